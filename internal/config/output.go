package config

// Output is the rendering used for failures on the command line
type Output string

const (
	// OutputTable renders a table of the request context
	OutputTable Output = "table"

	// OutputJSON renders the JSON projection of the failure
	OutputJSON Output = "json"
)

// IsValid checks if the output is known
func (o Output) IsValid() bool {
	return o == OutputTable || o == OutputJSON
}

// String returns the string representation
func (o Output) String() string {
	return string(o)
}
