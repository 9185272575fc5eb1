package domain

// StoreInfo описывает магазин сети
type StoreInfo struct {
	ID    int64
	Name  string `validate:"required,notblank,max=200"`
	City  string `validate:"required,notblank,max=100"`
	State string `validate:"required,len=2"` // код региона, например "WA"
	Hours string `validate:"max=100"`        // свободный текст, например "9am - 5pm"
}

func NewStoreInfo(id int64, name, city, state, hours string) *StoreInfo {
	return &StoreInfo{
		ID:    id,
		Name:  name,
		City:  city,
		State: state,
		Hours: hours,
	}
}
