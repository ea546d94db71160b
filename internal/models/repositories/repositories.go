package repositories

import "database/sql"

// Event — строка таблицы events. Колонки, добавленные миграциями, nullable:
// в старых базах они пустые.
type Event struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	InitialDate sql.NullString  `db:"initial_date"`
	FinalDate   sql.NullString  `db:"final_date"`
	CEP         sql.NullString  `db:"cep"`
	Endereco    sql.NullString  `db:"endereco"`
	Numero      sql.NullString  `db:"numero"`
	Bairro      sql.NullString  `db:"bairro"`
	Cidade      sql.NullString  `db:"cidade"`
	ImageURL    sql.NullString  `db:"image_url"`
	Lat         sql.NullFloat64 `db:"lat"`
	Lng         sql.NullFloat64 `db:"lng"`
}

// Migration — запись таблицы schema_migrations.
type Migration struct {
	Version   int    `db:"version"`
	Name      string `db:"name"`
	AppliedAt string `db:"applied_at"`
}
