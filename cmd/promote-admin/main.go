// promote-admin es el proceso fuera de banda para otorgar rol admin:
// el registro público siempre crea usuarios con rol user.
//
//	promote-admin -email persona@example.com
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	pg "adoption-platform/internal/adapters/storage/postgres"
)

func main() {
	_ = godotenv.Load()

	email := flag.String("email", "", "email del usuario a promover")
	dsn := flag.String("dsn", os.Getenv("DB_DSN"), "DSN de Postgres (default: env DB_DSN)")
	flag.Parse()

	if strings.TrimSpace(*email) == "" || strings.TrimSpace(*dsn) == "" {
		fmt.Fprintln(os.Stderr, "uso: promote-admin -email <email> [-dsn <dsn>]")
		os.Exit(2)
	}

	db, err := pg.Open(*dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error conectando a la base: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := db.ExecContext(ctx, `
		UPDATE users
		SET role = 'admin', updated_at = now()
		WHERE email = lower($1)
	`, strings.TrimSpace(*email))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error actualizando rol: %v\n", err)
		os.Exit(1)
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		fmt.Fprintf(os.Stderr, "no existe un usuario con email %s\n", *email)
		os.Exit(1)
	}
	fmt.Printf("usuario %s ahora es admin\n", *email)
}
