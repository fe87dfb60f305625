package stringsutil

// RemoveEmptyStrings drops empty entries, keeping the original order.
func RemoveEmptyStrings(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			result = append(result, v)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
