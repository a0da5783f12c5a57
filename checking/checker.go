package checking

// CheckerResponse is a response returned after checking a run
//
// Contains the result of checking the recorded traces.
type CheckerResponse interface {
	// Create a response.
	//
	// Returns a boolean that is true if all properties hold, false otherwise.
	// Returns a string describing the response.
	// This includes a description of every violated property and the slot it was violated in.
	Response() (bool, string)

	// Export the failures of the run.
	//
	// Returns an empty slice if no property was violated.
	Export() []Failure
}
