package domain

// MachfileName is the default configuration file name looked up in the
// working directory.
const MachfileName = "machfile.yaml"

// Target represents a named unit of work: a sequence of shell commands with
// an ordered list of prerequisite targets that must complete first.
// It uses InternedString for names, which are repeated throughout the
// prerequisite relation.
type Target struct {
	Name          InternedString
	Description   string
	Commands      []string
	Prerequisites []InternedString
}
