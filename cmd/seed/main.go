// seed crea el esquema mínimo (materials, stakeholders) y carga datos de
// ejemplo para el entorno de desarrollo. Idempotente: las tablas usan IF NOT
// EXISTS y las inserciones ON CONFLICT DO NOTHING.
//
// Uso: go run ./cmd/seed (lee la misma configuración de base de datos que la API)
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/obra-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/obra-stock/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS materials (
	id       bigserial PRIMARY KEY,
	name     text      NOT NULL UNIQUE,
	unit     text      NOT NULL,
	quantity bigint    NOT NULL DEFAULT 0 CHECK (quantity >= 0)
);

CREATE TABLE IF NOT EXISTS stakeholders (
	id           bigserial PRIMARY KEY,
	name         text,
	phone_number text NOT NULL UNIQUE
);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		fmt.Fprintf(os.Stderr, "crear esquema: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Esquema creado (materials, stakeholders).")

	samples := []struct{ name, unit string }{
		{"Cement", "bags"},
		{"Sand", "tonnes"},
		{"Steel Rods", "metres"},
		{"Gravel", "tonnes"},
	}
	for _, s := range samples {
		if _, err := pool.Exec(ctx,
			`INSERT INTO materials (name, unit) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			s.name, s.unit,
		); err != nil {
			fmt.Fprintf(os.Stderr, "insertar material %s: %v\n", s.name, err)
			os.Exit(1)
		}
	}
	fmt.Println("Materiales de ejemplo cargados.")

	if _, err := pool.Exec(ctx,
		`INSERT INTO stakeholders (name, phone_number) VALUES ($1, $2) ON CONFLICT (phone_number) DO NOTHING`,
		"Test User", "+255756584341",
	); err != nil {
		fmt.Fprintf(os.Stderr, "insertar stakeholder: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Stakeholder de prueba cargado.")
}
