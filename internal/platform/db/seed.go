package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ascend/internal/domain/auth"
	"ascend/internal/platform/config"
)

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		return err
	}

	if err := ensureShifts(ctx, pool); err != nil {
		return err
	}

	return ensureLeaveCategories(ctx, pool)
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, "INSERT INTO users (email, password_hash, name, role) VALUES ($1, $2, $3, $4)", email, hashed, "Administrador", auth.RoleAdmin)
	return err
}

func ensureShifts(ctx context.Context, pool *pgxpool.Pool) error {
	for _, name := range []string{"Turno A", "Turno B", "Turno C", "Administrativo"} {
		if _, err := pool.Exec(ctx, "INSERT INTO shifts (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", name); err != nil {
			return err
		}
	}
	return nil
}

func ensureLeaveCategories(ctx context.Context, pool *pgxpool.Pool) error {
	for _, name := range []string{"Doença", "Acidente de Trabalho", "Licença Maternidade", "Licença Paternidade"} {
		if _, err := pool.Exec(ctx, "INSERT INTO leave_categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", name); err != nil {
			return err
		}
	}
	return nil
}
