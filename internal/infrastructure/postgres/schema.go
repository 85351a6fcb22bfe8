package postgres

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain"
)

// Schema DDL del catálogo. La FK de products hacia categories es ON DELETE
// SET NULL: borrar una categoría por fuera del cascade helper no arrastra
// sus productos, solo les deja la FK en NULL.
const Schema = `
CREATE TABLE IF NOT EXISTS categories (
    id            BIGSERIAL PRIMARY KEY,
    name          VARCHAR(100) NOT NULL,
    description   VARCHAR(500) NOT NULL DEFAULT '',
    icon          VARCHAR(200) NOT NULL DEFAULT '',
    display_order INTEGER      NOT NULL DEFAULT 0 CHECK (display_order >= 0),
    created_date  TIMESTAMPTZ  NOT NULL,
    modified_date TIMESTAMPTZ  NOT NULL,
    is_active     BOOLEAN      NOT NULL DEFAULT TRUE
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_categories_name ON categories (name) WHERE is_active;

CREATE TABLE IF NOT EXISTS products (
    id            BIGSERIAL PRIMARY KEY,
    name          VARCHAR(200)  NOT NULL,
    description   VARCHAR(1000) NOT NULL DEFAULT '',
    price         NUMERIC(18,2) NOT NULL CHECK (price > 0),
    stock         INTEGER       NOT NULL DEFAULT 0 CHECK (stock >= 0),
    sku           VARCHAR(50)   NOT NULL,
    image_url     VARCHAR(500)  NOT NULL DEFAULT '',
    category_id   BIGINT        REFERENCES categories (id) ON DELETE SET NULL,
    created_date  TIMESTAMPTZ   NOT NULL,
    modified_date TIMESTAMPTZ   NOT NULL,
    is_active     BOOLEAN       NOT NULL DEFAULT TRUE
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_products_sku ON products (sku) WHERE is_active;
CREATE INDEX IF NOT EXISTS ix_products_category ON products (category_id);

CREATE TABLE IF NOT EXISTS admin_users (
    id            BIGSERIAL PRIMARY KEY,
    email         VARCHAR(200) NOT NULL,
    password_hash VARCHAR(100) NOT NULL,
    created_date  TIMESTAMPTZ  NOT NULL DEFAULT (now() AT TIME ZONE 'utc')
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_admin_users_email ON admin_users (email);
`

// Migrate aplica el DDL del catálogo (idempotente).
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, Schema); err != nil {
		return domain.NewStoreError("schema.Migrate", err)
	}
	return nil
}
