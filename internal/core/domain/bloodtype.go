package domain

// BloodType is an ABO/Rh blood group.
type BloodType string

const (
	BloodOPos  BloodType = "O+"
	BloodONeg  BloodType = "O-"
	BloodAPos  BloodType = "A+"
	BloodANeg  BloodType = "A-"
	BloodBPos  BloodType = "B+"
	BloodBNeg  BloodType = "B-"
	BloodABPos BloodType = "AB+"
	BloodABNeg BloodType = "AB-"
)

// BloodTypes returns all supported blood groups.
func BloodTypes() []BloodType {
	return []BloodType{
		BloodOPos, BloodONeg,
		BloodAPos, BloodANeg,
		BloodBPos, BloodBNeg,
		BloodABPos, BloodABNeg,
	}
}

// donateTo maps each group to the groups it can donate red cells to.
var donateTo = map[BloodType][]BloodType{
	BloodONeg:  {BloodOPos, BloodONeg, BloodAPos, BloodANeg, BloodBPos, BloodBNeg, BloodABPos, BloodABNeg},
	BloodOPos:  {BloodOPos, BloodAPos, BloodBPos, BloodABPos},
	BloodANeg:  {BloodAPos, BloodANeg, BloodABPos, BloodABNeg},
	BloodAPos:  {BloodAPos, BloodABPos},
	BloodBNeg:  {BloodBPos, BloodBNeg, BloodABPos, BloodABNeg},
	BloodBPos:  {BloodBPos, BloodABPos},
	BloodABNeg: {BloodABPos, BloodABNeg},
	BloodABPos: {BloodABPos},
}

// Compatibility describes who a group can give to and receive from.
type Compatibility struct {
	Type        BloodType   `json:"type"`
	DonateTo    []BloodType `json:"donate_to"`
	ReceiveFrom []BloodType `json:"receive_from"`
}

// CompatibilityFor returns the compatibility sheet for t, or false when t is
// not a recognized blood group.
func CompatibilityFor(t BloodType) (Compatibility, bool) {
	give, ok := donateTo[t]
	if !ok {
		return Compatibility{}, false
	}

	var receive []BloodType
	for _, donor := range BloodTypes() {
		for _, recipient := range donateTo[donor] {
			if recipient == t {
				receive = append(receive, donor)
				break
			}
		}
	}

	return Compatibility{
		Type:        t,
		DonateTo:    append([]BloodType(nil), give...),
		ReceiveFrom: receive,
	}, true
}
