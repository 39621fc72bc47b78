package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// Dir is where golden files are kept, relative to the package under test
var Dir = "testdata"

// updateEnv rewrites every golden file when set to a non-empty value
const updateEnv = "UNO_UPDATE_SNAPSHOTS"

var (
	lock  sync.Mutex
	calls = make(map[string]int)
)

// ValidateSnapshot compares obj, encoded as indented JSON, with the golden file of the test
// The file is named after the test and the type of obj, e.g. TestGame_Snapshot.PublicSnapshot.json.
// A second object of the same type in the same test gets a -1 suffix, and so on.
// Missing golden files are written and the check passes.
func ValidateSnapshot(t *testing.T, obj interface{}, msgAndArgs ...interface{}) {
	t.Helper()

	filename := goldenFile(t, obj)
	got, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatalf("could not encode snapshot: %v", err)
	}

	want, err := os.ReadFile(filename)
	if os.IsNotExist(err) || os.Getenv(updateEnv) != "" {
		write(t, filename, got)
		return
	} else if err != nil {
		t.Fatalf("could not read snapshot: %v", err)
	}

	if !assert.Equal(t, strings.TrimSpace(string(want)), strings.TrimSpace(string(got)), msgAndArgs...) {
		t.Logf("snapshot %s, set %s=1 to update", filename, updateEnv)
	}
}

func goldenFile(t *testing.T, obj interface{}) string {
	typ := reflect.TypeOf(obj)
	for typ != nil && typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	typeName := "nil"
	if typ != nil && typ.Name() != "" {
		typeName = typ.Name()
	} else if typ != nil {
		typeName = typ.Kind().String()
	}

	key := strings.ReplaceAll(t.Name(), "/", "_") + "." + typeName

	lock.Lock()
	n := calls[key]
	calls[key] = n + 1
	lock.Unlock()

	if n > 0 {
		key = fmt.Sprintf("%s-%d", key, n)
	}

	return filepath.Join(Dir, key+".json")
}

func write(t *testing.T, filename string, b []byte) {
	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		t.Fatalf("could not write snapshot: %v", err)
	}

	if err := os.WriteFile(filename, append(b, '\n'), 0644); err != nil {
		t.Fatalf("could not write snapshot: %v", err)
	}
}
