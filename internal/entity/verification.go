package entity

// VerificationDetails is the raw per-check outcome from the registry.
type VerificationDetails struct {
	RegistrationStatus  string `json:"registrationStatus"`
	PortalMatch         bool   `json:"portalMatch"`
	OwnershipVerified   bool   `json:"ownershipVerified"`
	BoundariesConfirmed bool   `json:"boundariesConfirmed"`
	TaxStatus           string `json:"taxStatus"`
}

// VerificationResult is the persisted unit of work for a land document.
// IsLegal is true exactly when Discrepancies is empty.
type VerificationResult struct {
	ID                  string              `json:"id"`
	DocumentName        string              `json:"documentName"`
	UploadDate          string              `json:"uploadDate"`
	Status              string              `json:"status"`
	IsLegal             bool                `json:"isLegal"`
	OwnershipType       string              `json:"ownershipType"`
	DocumentType        string              `json:"documentType"`
	SurveyNumber        string              `json:"surveyNumber"`
	District            string              `json:"district"`
	Taluk               string              `json:"taluk"`
	Village             string              `json:"village"`
	Area                string              `json:"area"`
	Owner               string              `json:"owner"`
	Classification      string              `json:"classification"`
	Discrepancies       []string            `json:"discrepancies"`
	Confidence          int                 `json:"confidence"`
	VerificationDetails VerificationDetails `json:"verificationDetails"`
}
