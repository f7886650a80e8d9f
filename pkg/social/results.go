package social

// PostResult reports the outcome of a publish attempt.
// Permanent marks failures that retrying cannot fix, such as revoked or
// rejected credentials.
type PostResult struct {
	Success   bool   `json:"success"`
	PostID    string `json:"post_id,omitempty"`
	URL       string `json:"url,omitempty"`
	Error     string `json:"error,omitempty"`
	Permanent bool   `json:"permanent,omitempty"`
}

// DeleteResult reports the outcome of a post removal attempt.
type DeleteResult struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	Permanent bool   `json:"permanent,omitempty"`
}

// VerifyResult reports whether account credentials are usable.
// Handle carries the platform's display identifier for the account.
type VerifyResult struct {
	Success   bool   `json:"success"`
	Handle    string `json:"handle,omitempty"`
	Error     string `json:"error,omitempty"`
	Permanent bool   `json:"permanent,omitempty"`
}

func postFailure(err string, permanent bool) PostResult {
	return PostResult{Error: err, Permanent: permanent}
}

func deleteFailure(err string, permanent bool) DeleteResult {
	return DeleteResult{Error: err, Permanent: permanent}
}

func verifyFailure(err string, permanent bool) VerifyResult {
	return VerifyResult{Error: err, Permanent: permanent}
}
