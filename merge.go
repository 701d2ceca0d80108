// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package configstack

// Merge folds layers in ascending precedence order into a single mapping:
// the first layer has the lowest precedence, the last one wins. Keys absent
// from the result so far are inserted; keys whose value is an object on both
// sides are merged recursively; in every other case the later layer's value
// replaces the earlier one wholesale.
//
// Merge is purely structural — no validation happens here — and
// deterministic: the same layers in the same order always produce the same
// result. The returned mapping shares no memory with the inputs; nil layers
// are skipped, and a nil map stored under a key merges like an empty object.
func Merge(layers ...map[string]any) map[string]any {
	merged := make(map[string]any)
	for _, layer := range layers {
		deepMerge(merged, layer)
	}
	return merged
}

// deepMerge merges src into dst and returns dst, allocating a fresh map when
// dst is nil so recursing into a nil map value cannot panic. Nested objects
// are merged recursively, any other conflicting value is replaced by src's
// side. Values taken from src are deep-copied so dst never aliases src.
func deepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}

	for key, srcVal := range src {
		dstVal, exists := dst[key]
		if !exists {
			dst[key] = cloneValue(srcVal)
			continue
		}

		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dstVal.(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = deepMerge(dstMap, srcMap)
			continue
		}

		dst[key] = cloneValue(srcVal)
	}
	return dst
}

func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return cloneMap(v)
	case []any:
		return cloneSlice(v)
	default:
		return val
	}
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, val := range src {
		dst[key] = cloneValue(val)
	}
	return dst
}

func cloneSlice(src []any) []any {
	if src == nil {
		return nil
	}
	dst := make([]any, len(src))
	for i, val := range src {
		dst[i] = cloneValue(val)
	}
	return dst
}
