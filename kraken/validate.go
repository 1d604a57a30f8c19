package kraken

func checkString(op, name, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return validationError(op, "%s %q is not one of %v", name, value, allowed)
}

func checkInt(op, name string, value int, allowed []int) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return validationError(op, "%s %d is not one of %v", name, value, allowed)
}

func checkRequired(op, name, value string) error {
	if value == "" {
		return validationError(op, "%s is required", name)
	}
	return nil
}
