package emailcheck

import "strings"

// Persona buckets for decision-maker classification of an address's
// local part.
var personaPatterns = map[string][]string{
	"C-Level": {
		"ceo", "cto", "cfo", "cmo", "coo", "chief",
		"president", "executive", "exec",
	},
	"VP/Director": {
		"vp", "director", "head", "lead", "vice",
	},
	"IT Manager": {
		"manager", "mgr", "it", "tech",
	},
	"Founder": {
		"founder", "owner", "admin",
	},
}

// Personas lists the known labels, for API validation.
func Personas() []string {
	return []string{"C-Level", "VP/Director", "IT Manager", "Founder"}
}

// DetectPersona classifies an address by its local part. Patterns match
// whole tokens only ("director" must not hit "cto"). Empty string for
// generic mailboxes.
func DetectPersona(email string) string {
	local, _, _ := strings.Cut(strings.ToLower(email), "@")
	if local == "" {
		return ""
	}
	tokens := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '-' || r == '_' || r == '+'
	})
	for _, persona := range Personas() {
		for _, p := range personaPatterns[persona] {
			for _, tok := range tokens {
				if tok == p {
					return persona
				}
			}
		}
	}
	return ""
}
