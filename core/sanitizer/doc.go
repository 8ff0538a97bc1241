// Package sanitizer cleans raw request input before it reaches application code.
//
// StripTags removes markup using a small state machine rather than a regular
// expression. It tracks nesting depth and quotes, so malformed or nested tags
// do not leak markup into the result:
//
//	sanitizer.StripTags(`<script type="text/javascript">alert("hi")</script>`)
//	// alert("hi")
//
//	sanitizer.StripTags(`<s><</s>script type="text/javascript">asdf`)
//	// asdf
//
// Trim removes surrounding whitespace while keeping interior spacing:
//
//	sanitizer.Trim("  asdfa sdf  asdf     ")
//	// "asdfa sdf  asdf"
//
// Clean combines both and is what the input manager applies to every
// top-level string parameter.
package sanitizer
