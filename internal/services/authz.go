package services

// Authorize checks that the authenticated caller acts on its own partner account.
func Authorize(callerID, partnerID string) error {
	if callerID == "" {
		return ErrUnauthenticated
	}
	if partnerID == "" || callerID != partnerID {
		return ErrPermissionDenied
	}
	return nil
}
