package blob

import (
	"reflect"
	"strconv"

	"github.com/arloliu/tossframe/format"
	"github.com/arloliu/tossframe/internal/hash"
)

// IDType is the set of id types a table blob can store.
type IDType interface {
	~int | ~int32 | ~int64 | ~string
}

// idKindOf returns the blob id kind used for K.
func idKindOf[K IDType]() format.IDKind {
	if reflect.TypeFor[K]().Kind() == reflect.String {
		return format.KindString
	}

	return format.KindInt64
}

// runKey returns the collision tracking key and the index hash of a run id.
func runKey[K IDType](id K, kind format.IDKind) (string, uint64) {
	if kind == format.KindString {
		s := reflect.ValueOf(id).String()
		return s, hash.Key(s)
	}

	v := reflect.ValueOf(id).Int()

	return strconv.FormatInt(v, 10), hash.Int(v)
}

// runHash returns the index hash of a run id.
func runHash[K IDType](id K, kind format.IDKind) uint64 {
	if kind == format.KindString {
		return hash.Key(reflect.ValueOf(id).String())
	}

	return hash.Int(reflect.ValueOf(id).Int())
}

func intID[K IDType](id K) int64 {
	return reflect.ValueOf(id).Int()
}

func stringID[K IDType](id K) string {
	return reflect.ValueOf(id).String()
}

// idFromInt converts a decoded integer to K, failing when it overflows K.
func idFromInt[K IDType](v int64) (K, bool) {
	var id K
	rv := reflect.ValueOf(&id).Elem()
	if rv.OverflowInt(v) {
		return id, false
	}
	rv.SetInt(v)

	return id, true
}

func idFromString[K IDType](s string) K {
	var id K
	reflect.ValueOf(&id).Elem().SetString(s)

	return id
}

// RunHash returns the hash the run index stores for id.
func RunHash[K IDType](id K) uint64 {
	return runHash(id, idKindOf[K]())
}
