// Package configstack loads, merges, and validates layered JSON
// configuration.
//
// Values are assembled from up to four sources in the following priority
// order (later sources override earlier ones, nested objects merge key by
// key):
//  1. Bundled default file (required)
//  2. File named by the CONFIGSTACK_CONFIG environment variable
//  3. configstackrc.json in the user's home directory
//  4. configstackrc.json in the working directory
//
// The merged result is validated against a JSON Schema (draft-04): the base
// schema shipped with the module, extended by optional user schema files
// found next to each source. Only after validation succeeds is the
// configuration installed.
//
// The main entry points are [New] (or [NewWithOptions]) followed by
// [Config.LoadDefault]. Loaded values are read with [Config.Get] and
// friends, changed with [Config.Update], and written back to a layer's file
// with [Config.SaveToHome], [Config.SaveToCwd] or [Config.SaveToEnv].
package configstack
