package leilao

// Override is the edit state of a single field.
type Override int

const (
	// Auto fields are rewritten by the recomputation.
	Auto Override = iota
	// Manual fields hold a user edit and are left untouched by the recomputation.
	Manual
)

func (o Override) String() string {
	if o == Manual {
		return "manual"
	}
	return "auto"
}

// EditSource is what caused a write.
type EditSource int

const (
	// DirectEdit is a user typing a value.
	DirectEdit EditSource = iota
	// PercentageEdit is a user moving a percentage, the value is derived from it.
	PercentageEdit
	// AutomaticWrite is the recomputation writing a derived value.
	AutomaticWrite
	// ParameterReset is a change of the loan parameters the field depends on.
	ParameterReset
)

func (s EditSource) String() string {
	switch s {
	case DirectEdit:
		return "direct"
	case PercentageEdit:
		return "percentage"
	case AutomaticWrite:
		return "automatic"
	case ParameterReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Next returns the state after a write from source s.
func (o Override) Next(s EditSource) Override {
	switch s {
	case DirectEdit:
		return Manual
	case PercentageEdit, ParameterReset:
		return Auto
	default:
		return o
	}
}
