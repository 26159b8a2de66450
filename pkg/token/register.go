package token

import "sync"

// Dynamic token types extend the builtin set at runtime. Dialects
// register their vendor keywords here and get back a TokenType above
// the builtin range.
var dynamic = struct {
	sync.RWMutex
	next  TokenType
	names map[TokenType]string
	types map[string]TokenType
}{
	next:  maxBuiltin,
	names: map[TokenType]string{},
	types: map[string]TokenType{},
}

// Register returns the token type for a dynamic keyword, allocating a
// fresh one on first use. Registering the same name again yields the
// type from the first call.
func Register(name string) TokenType {
	dynamic.Lock()
	defer dynamic.Unlock()
	if t, ok := dynamic.types[name]; ok {
		return t
	}
	dynamic.next++
	t := dynamic.next
	dynamic.names[t] = name
	dynamic.types[name] = t
	return t
}

func getDynamicName(t TokenType) (string, bool) {
	dynamic.RLock()
	defer dynamic.RUnlock()
	name, ok := dynamic.names[t]
	return name, ok
}

// LookupDynamicKeyword reports whether name is a registered dynamic
// keyword. The returned type is IDENT when it is not.
func LookupDynamicKeyword(name string) (TokenType, bool) {
	dynamic.RLock()
	defer dynamic.RUnlock()
	if t, ok := dynamic.types[name]; ok {
		return t, true
	}
	return IDENT, false
}

// IsDynamic reports whether t was allocated by Register.
func IsDynamic(t TokenType) bool {
	return t > maxBuiltin
}

// RegisteredTokens returns a snapshot of the dynamic tokens by type.
func RegisteredTokens() map[TokenType]string {
	dynamic.RLock()
	defer dynamic.RUnlock()
	out := make(map[TokenType]string, len(dynamic.names))
	for t, name := range dynamic.names {
		out[t] = name
	}
	return out
}
