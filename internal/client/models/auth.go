package models

// AuthMetadata holds the local passcode credentials. It is created once on
// first-run setup, read on every login attempt, and only ever replaced
// wholesale by a re-setup.
type AuthMetadata struct {
	PasscodeHash string `json:"passcodeHash"`
	Salt         string `json:"salt"`
	IsSetup      bool   `json:"isSetup"`
}
