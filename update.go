package configstack

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Get returns the value at a dotted key path ("core.loglevel") of the
// current configuration. Numbers come back as float64, nested objects as
// map[string]any, mirroring what the JSON layers produced. The second return
// is false when nothing is loaded or the path does not exist.
func (c *Config) Get(path string) (any, bool) {
	if c.raw == nil {
		return nil, false
	}

	result := gjson.GetBytes(c.raw, path)
	if !result.Exists() {
		return nil, false
	}
	return result.Value(), true
}

// GetString returns the string at path. False when the path is absent or
// holds a non-string value.
func (c *Config) GetString(path string) (string, bool) {
	if c.raw == nil {
		return "", false
	}

	result := gjson.GetBytes(c.raw, path)
	if result.Type != gjson.String {
		return "", false
	}
	return result.Str, true
}

// GetInt returns the number at path as an int64. False when the path is
// absent or holds a non-numeric value; fractional values are truncated.
func (c *Config) GetInt(path string) (int64, bool) {
	if c.raw == nil {
		return 0, false
	}

	result := gjson.GetBytes(c.raw, path)
	if result.Type != gjson.Number {
		return 0, false
	}
	return result.Int(), true
}

// GetBool returns the boolean at path. False in the second return when the
// path is absent or holds a non-boolean value.
func (c *Config) GetBool(path string) (bool, bool) {
	if c.raw == nil {
		return false, false
	}

	result := gjson.GetBytes(c.raw, path)
	if !result.IsBool() {
		return false, false
	}
	return result.Bool(), true
}

// Update sets the value at a dotted key path of the current configuration,
// creating intermediate objects as needed. With [Options.ValidateOnUpdate]
// set, the change is validated against the active schema first and rejected
// — configuration untouched — on violation; otherwise the change is applied
// without re-validation, matching the load-once-then-trust model.
//
// Returns [ErrNotLoaded] before the first successful load.
func (c *Config) Update(path string, value any) error {
	if c.current == nil {
		return ErrNotLoaded
	}

	raw, err := sjson.SetBytes(c.raw, path, value)
	if err != nil {
		return fmt.Errorf("setting %q: %w", path, err)
	}

	var next map[string]any
	if err := json.Unmarshal(raw, &next); err != nil {
		return fmt.Errorf("reparsing updated configuration: %w", err)
	}

	if c.opts.ValidateOnUpdate {
		if err := c.Validate(next, c.schema); err != nil {
			return err
		}
	}

	c.raw = raw
	c.current = next

	c.log.Debug().Str("key", path).Msg("configuration updated")
	return nil
}

// Add sets a key under the free-form `user` section. Shorthand for
// Update("user."+key, value).
func (c *Config) Add(key string, value any) error {
	return c.Update("user."+key, value)
}

// AddWithSchema sets a key under the `user` section and declares it in the
// active schema (`properties.user.properties.<key>`) with the given type and
// optional description, so later validations and [Config.Describe] know
// about it. The declaration is made before the value is applied: with
// [Options.ValidateOnUpdate] set, a value that contradicts valueType is
// rejected and the schema change rolled back.
func (c *Config) AddWithSchema(key string, value any, valueType, description string) error {
	if c.current == nil {
		return ErrNotLoaded
	}

	entry := map[string]any{"type": valueType}
	if description != "" {
		entry["description"] = description
	}

	properties := ensureMap(c.schema, "properties")
	user := ensureMap(properties, "user")
	userProperties := ensureMap(user, "properties")

	previous, declared := userProperties[key]
	userProperties[key] = entry

	if err := c.Update("user."+key, value); err != nil {
		if declared {
			userProperties[key] = previous
		} else {
			delete(userProperties, key)
		}
		return err
	}

	return nil
}
