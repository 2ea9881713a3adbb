package store_test

import (
	"testing"

	"src.treesh.dev/pkg/store"
	"src.treesh.dev/pkg/store/storetest"
)

func TestCmd(t *testing.T) {
	storetest.TestCmd(t, store.MustTempStore(t))
}

func TestGroup(t *testing.T) {
	storetest.TestGroup(t, store.MustTempStore(t))
}

func TestSession(t *testing.T) {
	storetest.TestSession(t, store.MustTempStore(t))
}
