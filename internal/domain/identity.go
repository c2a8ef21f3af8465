package domain

// VerifiedIdentity is the provider-agnostic identity record produced by a
// successful token verification. Missing optional claims normalize to the
// empty string. The caller owns the record; the verifier keeps no copy.
type VerifiedIdentity struct {
	Email         string       `json:"email"`
	EmailVerified bool         `json:"emailVerified"`
	FirstName     string       `json:"firstName"`
	LastName      string       `json:"lastName"`
	Avatar        string       `json:"avatar"`
	SubjectID     string       `json:"subjectId"`
	Provider      AuthProvider `json:"provider"`
}
