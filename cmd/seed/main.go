// seed crea o actualiza la cuenta de administrador y opcionalmente importa un catálogo CSV.
//
// Uso: go run ./cmd/seed -email admin@tienda.com -password secreto [-catalog productos.csv] [-latin1]
// El CSV lleva cabecera con: name, description, price, category, currency, stock, image.
// Las columnas faltantes quedan vacías; currency vacío usa PHP.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/persistence"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

func main() {
	name := flag.String("name", "Administrador", "nombre del admin")
	email := flag.String("email", "", "email del admin (requerido)")
	password := flag.String("password", "", "password del admin (requerido al crear)")
	catalog := flag.String("catalog", "", "CSV de productos a importar")
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	if *email == "" {
		fmt.Fprintln(os.Stderr, "-email es requerido")
		os.Exit(2)
	}

	ctx := context.Background()
	repos, err := persistence.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer repos.Close()

	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer})
	admin, err := ensureAdmin(ctx, repos.Users, authUC, *name, *email, *password)
	if err != nil {
		log.Fatal().Err(err).Msg("crear admin")
	}
	log.Info().Str("user_id", admin.ID).Str("email", admin.Email).Msg("admin listo")

	if *catalog == "" {
		return
	}
	f, err := os.Open(*catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir catálogo")
	}
	defer f.Close()

	products, err := parseCatalog(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}
	productUC := usecase.NewProductUseCase(repos.Products)
	created := 0
	for i, p := range products {
		if _, err := productUC.Create(ctx, admin.ID, p); err != nil {
			log.Warn().Err(err).Int("fila", i+2).Str("name", p.Name).Msg("producto omitido")
			continue
		}
		created++
	}
	log.Info().Int("creados", created).Int("filas", len(products)).Msg("catálogo importado")
}

// ensureAdmin crea la cuenta si no existe; si existe la marca como admin y, si se indicó, cambia el password.
func ensureAdmin(ctx context.Context, users repository.UserRepository, authUC *auth.AuthUseCase, name, email, password string) (*entity.User, error) {
	existing, err := users.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	user := existing
	if user == nil {
		if password == "" {
			return nil, errors.New("-password es requerido para crear el admin")
		}
		user, err = authUC.CreateUser(ctx, dto.RegisterRequest{Name: name, Email: email, Password: password})
		if err != nil {
			return nil, err
		}
	} else if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.IsAdmin = true
	if err := users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// parseCatalog lee el CSV con cabecera; las columnas se ubican por nombre.
func parseCatalog(r io.Reader, latin1 bool) ([]dto.CreateProductRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cabecera: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := col["name"]; !ok {
		return nil, errors.New("cabecera sin columna name")
	}
	get := func(rec []string, key string) string {
		i, ok := col[key]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []dto.CreateProductRequest
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", line, err)
		}
		p := dto.CreateProductRequest{
			Name:        get(rec, "name"),
			Description: get(rec, "description"),
			Category:    get(rec, "category"),
			Currency:    strings.ToUpper(get(rec, "currency")),
			Image:       get(rec, "image"),
		}
		if s := get(rec, "price"); s != "" {
			if p.Price, err = decimal.NewFromString(strings.ReplaceAll(s, ",", ".")); err != nil {
				return nil, fmt.Errorf("fila %d: price %q: %w", line, s, err)
			}
		}
		if s := get(rec, "stock"); s != "" {
			if p.Stock, err = strconv.Atoi(s); err != nil {
				return nil, fmt.Errorf("fila %d: stock %q: %w", line, s, err)
			}
		}
		out = append(out, p)
	}
	return out, nil
}
