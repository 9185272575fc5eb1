package converter

// ProductModel представляет запись таблицы product в PostgreSQL.
// Цена читается как текст (price::text), чтобы не терять точность NUMERIC.
type ProductModel struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Price       string `db:"price"`
	ImageURL    string `db:"image_url"`
}

// StoreInfoModel представляет запись таблицы store_info в PostgreSQL.
type StoreInfoModel struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	City  string `db:"city"`
	State string `db:"state"`
	Hours string `db:"hours"`
}
