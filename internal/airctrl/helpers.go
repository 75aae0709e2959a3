package airctrl

// nameKeys and modelKeys are probed in priority order: the legacy key wins
// over the newer generations when a firmware reports more than one.
var (
	nameKeys  = []string{KeyName, KeyNewName, KeyNew2Name}
	modelKeys = []string{KeyModelID, KeyNewModelID, KeyNew2ModelID}
)

// ExtractName pulls the user assigned device name out of a raw status.
// Missing, nil or empty values count as absent.
func ExtractName(status RawStatus) (string, bool) {
	return firstString(status, nameKeys)
}

// ExtractModel pulls the model identifier out of a raw status. Identifiers
// longer than nine characters carry a firmware revision tail that is not part
// of the model name and is cut off.
func ExtractModel(status RawStatus) (string, bool) {
	model, ok := firstString(status, modelKeys)
	if !ok {
		return "", false
	}
	if len(model) > 9 {
		model = model[:9]
	}
	return model, true
}

func firstString(status RawStatus, keys []string) (string, bool) {
	for _, key := range keys {
		if v, ok := status[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}
