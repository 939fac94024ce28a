package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	cases := []struct {
		name, in, user, pass, want string
	}{
		{
			name: "jdbc url",
			in:   "jdbc:mysql://root:pw@localhost:3306/shop?useUnicode=true&characterEncoding=utf8&useSSL=false&serverTimezone=Asia%2FShanghai",
			want: "root:pw@tcp(localhost:3306)/shop?charset=utf8&loc=Asia%2FShanghai&parseTime=true&tls=false",
		},
		{
			name: "override credentials",
			in:   "mysql://a:b@db:3306/shop",
			user: "u", pass: "p",
			want: "u:p@tcp(db:3306)/shop?charset=utf8mb4&parseTime=true",
		},
		{
			name: "credentials in query",
			in:   "mysql://db:3306/shop?user=q&password=s&useSSL=skip-verify",
			want: "q:s@tcp(db:3306)/shop?charset=utf8mb4&parseTime=true&tls=skip-verify",
		},
		{
			name: "native dsn kept",
			in:   "  root:pw@tcp(127.0.0.1:3306)/shop?parseTime=true ",
			user: "ignored",
			want: "root:pw@tcp(127.0.0.1:3306)/shop?parseTime=true",
		},
		{name: "empty", in: "", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeMySQLDSN(tc.in, tc.user, tc.pass))
		})
	}
}

func TestNewGorm_Sqlite(t *testing.T) {
	db, err := NewGorm(Opts{Driver: "sqlite", LogLevel: "silent", MaxOpenConns: 10})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections, "memory db is pinned to one connection")

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "root:****@tcp(db:3306)/shop", maskDSN("root:secret@tcp(db:3306)/shop"))
	assert.Equal(t, "root@tcp(db:3306)/shop", maskDSN("root@tcp(db:3306)/shop"))
	assert.Equal(t, "/shop", maskDSN("/shop"))
}
