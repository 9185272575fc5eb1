package domain

// EntityKind различает коллекции каталога внутри хранилища
type EntityKind string

const (
	KindProduct   EntityKind = "Product"
	KindStoreInfo EntityKind = "StoreInfo"
)

func (k EntityKind) String() string {
	return string(k)
}
