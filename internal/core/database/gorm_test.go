package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGorm_SQLiteLifecycle(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "app.db")
	db, err := NewGorm(Opts{Driver: "sqlite", DSN: dsn, LogLevel: "silent"})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasIndex("users", "idx_users_email"))

	require.NoError(t, Ping(context.Background(), db))
	require.NoError(t, Close(db))
	assert.Error(t, Ping(context.Background(), db))
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle", DSN: "x"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "a.db?_busy_timeout=5000&_foreign_keys=on", sqliteDSN("a.db"))
	assert.Equal(t, "a.db?cache=shared&_busy_timeout=5000&_foreign_keys=on", sqliteDSN("a.db?cache=shared"))
	assert.Equal(t, ":memory:", sqliteDSN(":memory:"))
	assert.Equal(t, "a.db?_busy_timeout=1", sqliteDSN("a.db?_busy_timeout=1"))
}

func TestNormalizeMySQLDSN(t *testing.T) {
	tests := []struct {
		name, in, user, pass, want string
	}{
		{
			name: "driver syntax kept",
			in:   "root:pw@tcp(127.0.0.1:3306)/app?parseTime=true",
			want: "root:pw@tcp(127.0.0.1:3306)/app?parseTime=true",
		},
		{
			name: "url form",
			in:   "mysql://root:pw@localhost:3306/app",
			want: "root:pw@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=true",
		},
		{
			name: "jdbc with overrides",
			in:   "jdbc:mysql://localhost:3306/app?useSSL=false&characterEncoding=utf8&useUnicode=true",
			user: "svc", pass: "secret",
			want: "svc:secret@tcp(localhost:3306)/app?charset=utf8&parseTime=true&tls=false",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeMySQLDSN(tt.in, tt.user, tt.pass))
		})
	}
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "postgres://u:****@db:5432/app", MaskDSN("postgres://u:p@db:5432/app"))
	assert.Equal(t, "root:****@tcp(h:3306)/app", MaskDSN("root:pw@tcp(h:3306)/app"))
	assert.Equal(t, "data/app.db", MaskDSN("data/app.db"))
}
