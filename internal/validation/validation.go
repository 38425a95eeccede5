// Package validation decodes request payloads and checks them.
//
// Struct rules are expressed with validator tags; checks a tag cannot express
// are returned as CustomValidationErrors. Either kind is reduced to a 400 whose
// message names the offending field.
package validation
