package wordlist

// Record is one element of the remote JSON array.
//
//	[
//	  { "original": "obviously", "translation": "очевидно" }
//	]
//
// Pointers distinguish a missing field from an empty one. Unknown fields are ignored.
type Record struct {
	Original    *string `json:"original"`
	Translation *string `json:"translation"`
}
