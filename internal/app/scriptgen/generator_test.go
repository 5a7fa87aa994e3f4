package scriptgen

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/studentsync/internal/app/models"
)

const studentsPrefix = "const studentsData = "

func defaultOptions() Options {
	return Options{
		EnvFile:        "../.env.local",
		ProjectIDEnv:   "FIREBASE_ADMIN_PROJECT_ID",
		ClientEmailEnv: "FIREBASE_ADMIN_CLIENT_EMAIL",
		PrivateKeyEnv:  "FIREBASE_ADMIN_PRIVATE_KEY",
		Collection:     "users",
		Role:           "student",
	}
}

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := NewGenerator(defaultOptions(), zerolog.Nop())
	require.NoError(t, err)
	return g
}

// embeddedStudents parses the record literal back out of a rendered script.
func embeddedStudents(t *testing.T, script []byte) []models.StudentRecord {
	t.Helper()

	scanner := bufio.NewScanner(bytes.NewReader(script))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, studentsPrefix) {
			continue
		}
		literal := strings.TrimSuffix(strings.TrimPrefix(line, studentsPrefix), ";")

		var records []models.StudentRecord
		require.NoError(t, json.Unmarshal([]byte(literal), &records))
		return records
	}
	require.NoError(t, scanner.Err())
	t.Fatal("students literal not found in script")
	return nil
}

func sampleRecords() []models.StudentRecord {
	return []models.StudentRecord{
		{No: 1, Name: "Afiqah Dwi Salsabila", Class: "6 A", NISN: "0141437500", Password: "afiqah7500", Email: "afiqah.7500@students.pppl.id"},
		{No: 88, Name: "Arva Zulham Safi'i", Class: "6 D", NISN: "3146124095", Password: "arva4095", Email: "arva.4095@students.pppl.id"},
		{No: 89, Name: `Quote "Back\slash" </script>` + "\u2028", Class: "", NISN: "12", Password: "quote12", Email: "quote.12@students.pppl.id"},
	}
}

func TestRender_RoundTrip(t *testing.T) {
	records := sampleRecords()

	script, err := newTestGenerator(t).Render(records)
	require.NoError(t, err)

	assert.Equal(t, records, embeddedStudents(t, script))
}

func TestRender_EscapesEmbeddedText(t *testing.T) {
	script, err := newTestGenerator(t).Render(sampleRecords())
	require.NoError(t, err)

	text := string(script)
	assert.NotContains(t, text, "</script>")
	assert.NotContains(t, text, "\u2028")
	assert.Contains(t, text, `\"Back\\slash\"`)
	assert.Contains(t, text, `"nama":"Arva Zulham Safi'i"`)
}

func TestRender_Deterministic(t *testing.T) {
	g := newTestGenerator(t)

	first, err := g.Render(sampleRecords())
	require.NoError(t, err)
	second, err := g.Render(sampleRecords())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRender_Scaffolding(t *testing.T) {
	script, err := newTestGenerator(t).Render(nil)
	require.NoError(t, err)

	text := string(script)
	assert.Contains(t, text, "const studentsData = [];")
	assert.Contains(t, text, `process.env["FIREBASE_ADMIN_PROJECT_ID"]`)
	assert.Contains(t, text, `process.env["FIREBASE_ADMIN_CLIENT_EMAIL"]`)
	assert.Contains(t, text, `process.env["FIREBASE_ADMIN_PRIVATE_KEY"]`)
	assert.Contains(t, text, `path.join(__dirname, "../.env.local")`)
	assert.Contains(t, text, `const USERS_COLLECTION = "users";`)
	assert.Contains(t, text, `const STUDENT_ROLE = "student";`)
	assert.Contains(t, text, "error.code === 'auth/user-not-found'")

	clear := strings.Index(text, "await clearExistingData(clients)")
	create := strings.Index(text, "await createStudents(clients, studentsData)")
	require.Positive(t, clear)
	assert.Greater(t, create, clear)
}

func TestRender_QuotesOptions(t *testing.T) {
	opts := defaultOptions()
	opts.EnvFile = `..\secrets "prod".env`

	g, err := NewGenerator(opts, zerolog.Nop())
	require.NoError(t, err)

	script, err := g.Render(nil)
	require.NoError(t, err)
	assert.Contains(t, string(script), `path.join(__dirname, "..\\secrets \"prod\".env")`)
}

func TestWrite_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scripts", "populate-students-from-excel.js")
	records := sampleRecords()

	require.NoError(t, newTestGenerator(t).Write(path, records))

	script, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, embeddedStudents(t, script), len(records))
}
