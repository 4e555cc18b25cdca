package data

import "github.com/BurntSushi/toml"

// tomlDecode is a tiny shared wrapper so every table loader in this
// package decodes embedded bytes the same way.
func tomlDecode(b []byte, v interface{}) (toml.MetaData, error) {
	return toml.Decode(string(b), v)
}
