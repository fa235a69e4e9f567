// Package schema provides the YAML type-schema definition, parsing, and
// upfront validation of a boxed value type.
//
// # Schema Overview
//
//	type: CodeDeliveryDetails
//	doc: Details about where a verification code was sent.
//	from_internal: true
//	fields:
//	  - name: Destination
//	    type: string
//	    doc: Where the code was sent.
//	    setter: true
//	    annotations: [nullable]
//	  - name: DeliveryMedium
//	    type: enum
//	    class: DeliveryMedium
//	    doc: How the code was sent.
//	  - name: Attempts
//	    type: integer
//	    doc: Number of delivery attempts.
//
// # Field kinds
//
// The type key of a field selects one of a closed set of kinds:
//
//   - integer, long, double, bool (boolean): scalar, stored inline
//   - string: owned text, absent by default
//   - object: owned handle to another boxed type named by class
//   - enum (enumerated): inline enumerated value named by class
//
// The nullable annotation is valid only on string and object fields.
//
// Validation happens entirely before a TypeSchema is returned; a schema that
// parses successfully can always be handed to the generator.
package schema
