package domain

import "strings"

// Role is the audience a summary is written for.
type Role string

// Available roles.
const (
	RoleAuditor  Role = "Auditor"
	RoleQALead   Role = "QA Lead"
	RoleEngineer Role = "Engineer"
	RoleNewHire  Role = "New Hire"
)

// DefaultRole is used when a caller omits the role or names an unknown one.
const DefaultRole = RoleQALead

// Roles lists every role in display order.
func Roles() []Role {
	return []Role{RoleAuditor, RoleQALead, RoleEngineer, RoleNewHire}
}

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	switch r {
	case RoleAuditor, RoleQALead, RoleEngineer, RoleNewHire:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// Tone controls rendering style.
type Tone string

// Available tones.
const (
	ToneFormal     Tone = "formal"
	ToneConcise    Tone = "concise"
	ToneTechnical  Tone = "technical"
	ToneAccessible Tone = "accessible"
)

// RoleProfile is the fixed configuration attached to a role.
type RoleProfile struct {
	Keywords           []string
	Tone               Tone
	MinCitationDensity float64

	// Sections are the ordered output section titles.
	Sections []string
}

// Profile returns the fixed profile for the role.
// Unknown roles get the default role's profile.
func (r Role) Profile() RoleProfile {
	switch r {
	case RoleAuditor:
		return RoleProfile{
			Keywords:           []string{"compliance", "regulatory", "audit", "deviation", "capa", "approval", "signature", "gmp", "cfr", "evidence"},
			Tone:               ToneFormal,
			MinCitationDensity: 0.7,
			Sections:           []string{"Compliance Obligations", "Deviations & CAPA", "Approvals & Timelines"},
		}
	case RoleEngineer:
		return RoleProfile{
			Keywords:           []string{"validation", "iq", "oq", "pq", "equipment", "specification", "test", "calibration", "protocol"},
			Tone:               ToneTechnical,
			MinCitationDensity: 0.4,
			Sections:           []string{"Technical Requirements", "Testing & Validation", "Change Impacts"},
		}
	case RoleNewHire:
		return RoleProfile{
			Keywords:           []string{"training", "procedure", "sop", "responsibility", "overview", "purpose", "scope", "role"},
			Tone:               ToneAccessible,
			MinCitationDensity: 0.4,
			Sections:           []string{"Overview", "Key Procedures", "Training Requirements"},
		}
	default:
		return RoleProfile{
			Keywords:           []string{"quality", "risk", "capa", "deviation", "release", "batch", "approval", "trend"},
			Tone:               ToneConcise,
			MinCitationDensity: 0.5,
			Sections:           []string{"Quality Risks", "CAPA Status", "Release Decisions"},
		}
	}
}

// ParseRole resolves a role name case-insensitively.
// The boolean is false when the input was not recognised and the default was used.
func ParseRole(s string) (Role, bool) {
	want := strings.TrimSpace(s)
	for _, r := range Roles() {
		if strings.EqualFold(want, string(r)) {
			return r, true
		}
	}
	return DefaultRole, false
}

// Lens is the topical angle of a summary.
type Lens string

// Available lenses.
const (
	LensRegulatory      Lens = "Regulatory"
	LensRiskCAPA        Lens = "Risk & CAPA"
	LensTraining        Lens = "Training"
	LensTimelineChange  Lens = "Timeline/Change log"
	LensTestingEvidence Lens = "Testing & Evidence"
)

// DefaultLens is used when a caller omits the lens or names an unknown one.
const DefaultLens = LensRegulatory

// Lenses lists every lens in display order.
func Lenses() []Lens {
	return []Lens{LensRegulatory, LensRiskCAPA, LensTraining, LensTimelineChange, LensTestingEvidence}
}

// IsValid returns true if the lens is recognised.
func (l Lens) IsValid() bool {
	switch l {
	case LensRegulatory, LensRiskCAPA, LensTraining, LensTimelineChange, LensTestingEvidence:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (l Lens) String() string {
	return string(l)
}

// Keywords returns the fixed keyword list for the lens.
func (l Lens) Keywords() []string {
	switch l {
	case LensRiskCAPA:
		return []string{"risk", "capa", "deviation", "root", "cause", "mitigation", "severity", "investigation"}
	case LensTraining:
		return []string{"training", "sop", "competency", "procedure", "qualification", "curriculum"}
	case LensTimelineChange:
		return []string{"date", "effective", "revision", "change", "version", "history", "timeline"}
	case LensTestingEvidence:
		return []string{"test", "evidence", "result", "protocol", "iq", "oq", "pq", "acceptance", "criteria"}
	default:
		return []string{"regulatory", "fda", "ema", "cfr", "gmp", "compliance", "inspection", "requirement"}
	}
}

// ParseLens resolves a lens name case-insensitively.
// The boolean is false when the input was not recognised and the default was used.
func ParseLens(s string) (Lens, bool) {
	want := strings.TrimSpace(s)
	for _, l := range Lenses() {
		if strings.EqualFold(want, string(l)) {
			return l, true
		}
	}
	return DefaultLens, false
}

// Detail is how much of the document a summary covers.
type Detail string

// Available detail levels.
const (
	DetailBrief    Detail = "Brief"
	DetailStandard Detail = "Standard"
	DetailDeepDive Detail = "Deep Dive"
)

// DetailPlan bounds orchestration for a detail level.
type DetailPlan struct {
	TargetSentences int
	MaxChunks       int
}

// Plan returns the sentence and chunk budget for the detail level.
func (d Detail) Plan() DetailPlan {
	switch d {
	case DetailBrief:
		return DetailPlan{TargetSentences: 4, MaxChunks: 6}
	case DetailDeepDive:
		return DetailPlan{TargetSentences: 10, MaxChunks: 24}
	default:
		return DetailPlan{TargetSentences: 6, MaxChunks: 12}
	}
}

// String returns the string representation.
func (d Detail) String() string {
	return string(d)
}

// ParseDetail normalises a detail string by prefix:
// "brief*" is Brief, "deep*" is Deep Dive, anything else is Standard.
func ParseDetail(s string) Detail {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(v, "brief"):
		return DetailBrief
	case strings.HasPrefix(v, "deep"):
		return DetailDeepDive
	default:
		return DetailStandard
	}
}

// ModeInput is the raw mode object from a caller.
type ModeInput struct {
	Role   string `json:"role,omitempty"`
	Lens   string `json:"lens,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Mode is the resolved role, lens and detail for a summary.
type Mode struct {
	Role   Role   `json:"role"`
	Lens   Lens   `json:"lens"`
	Detail Detail `json:"detail"`
}

// ResolveMode validates a raw mode, falling back to defaults.
// roleOK and lensOK report whether the supplied values were recognised;
// an empty value counts as recognised.
func ResolveMode(in ModeInput) (Mode, bool, bool) {
	role, roleOK := ParseRole(in.Role)
	lens, lensOK := ParseLens(in.Lens)
	if strings.TrimSpace(in.Role) == "" {
		roleOK = true
	}
	if strings.TrimSpace(in.Lens) == "" {
		lensOK = true
	}
	return Mode{Role: role, Lens: lens, Detail: ParseDetail(in.Detail)}, roleOK, lensOK
}
