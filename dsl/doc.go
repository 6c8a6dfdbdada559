// Package dsl provides the field types and the schema builder for docview.
//
// Overview
//   - Field types: String()/Bool()/Int()/Number()/DateTime()/UUID()/Any(),
//     List(elem), Map(elem)/MapAny().
//   - Constraints: Min/Max/MaxLen/Enum/Refine wrap any field type.
//   - Builder API: Document(name).Field(...).Required().Default(v).UnknownStrict().MustBuild().
//   - Struct derivation: StructOf[T](name) infers a schema from a Go struct.
//   - Schema files: LoadSchema/LoadSchemaFile read the YAML form (see SchemaFile).
//
// Storage forms
//
//	String   -> string         Int    -> int64       Number -> float64
//	Bool     -> bool           UUID   -> uuid.UUID   DateTime -> time.Time
//	List     -> []any          Map    -> map[string]any
//
// DateTime and UUID encode to strings on serialization (RFC3339 in UTC and the
// canonical UUID form). List and Map always build fresh containers on Parse,
// so documents never alias caller-owned slices or maps.
//
// Example
//
//	post := dsl.Document("Post").
//	    Field("name", dsl.String()).Required().
//	    Field("body", dsl.String()).
//	    Field("tags", dsl.List(dsl.String())).
//	    Field("created_time", dsl.DateTime()).
//	    MustBuild()
package dsl
