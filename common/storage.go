package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key interface{}, value interface{}) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}

// BytesEqual compares two slices of bytes by wrapped VM equality opcode.
func BytesEqual(a []byte, b []byte) bool {
	return util.Equals(string(a), string(b))
}

// ID converts numeric entity identifier to the storage key form.
func ID(id int) []byte {
	var buf interface{} = id
	return buf.([]byte)
}
