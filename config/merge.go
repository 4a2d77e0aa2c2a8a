package config

// mergeConfigs layers override on top of base. Set fields in override win;
// extension sections that are maps on both sides are merged key by key.
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.BaseBranch != "" {
		result.BaseBranch = override.BaseBranch
	}
	if override.Limit != nil {
		limit := *override.Limit
		result.Limit = &limit
	}
	if override.Theme != "" {
		result.Theme = override.Theme
	}
	if override.Icons != "" {
		result.Icons = override.Icons
	}
	if override.CommitPattern != "" {
		result.CommitPattern = override.CommitPattern
	}
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string(nil), override.Exclude...)
	}

	if override.Extensions != nil {
		merged := make(map[string]interface{}, len(base.Extensions)+len(override.Extensions))
		for key, value := range base.Extensions {
			merged[key] = value
		}
		for key, value := range override.Extensions {
			if baseMap, ok := merged[key].(map[string]interface{}); ok {
				if overrideMap, ok := value.(map[string]interface{}); ok {
					mergedMap := make(map[string]interface{}, len(baseMap)+len(overrideMap))
					for k, v := range baseMap {
						mergedMap[k] = v
					}
					for k, v := range overrideMap {
						mergedMap[k] = v
					}
					merged[key] = mergedMap
					continue
				}
			}
			merged[key] = value
		}
		result.Extensions = merged
	}

	result.Sources = append([]string(nil), base.Sources...)
	return &result
}
