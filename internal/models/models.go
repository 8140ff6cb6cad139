package models

// Catalog hierarchy: Category -> Brand -> Model -> Product -> variant rows.
// Table names follow the legacy schema.

type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"uniqueIndex;not null"     json:"name"`
	Description string `gorm:"not null"                 json:"description"`
}

func (Category) TableName() string { return "product_category" }

type Brand struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"                json:"id"`
	Name        string `gorm:"not null;uniqueIndex:idx_brand_category" json:"name"`
	Description string `gorm:"not null"                                json:"description"`
	CategoryID  uint   `gorm:"not null;uniqueIndex:idx_brand_category;index" json:"category_id"`
}

func (Brand) TableName() string { return "brand" }

type Model struct {
	ID      uint   `gorm:"primaryKey;autoIncrement"              json:"id"`
	Name    string `gorm:"not null;uniqueIndex:idx_model_brand"  json:"name"`
	BrandID uint   `gorm:"not null;uniqueIndex:idx_model_brand;index" json:"brand_id"`
}

func (Model) TableName() string { return "model" }

type Product struct {
	ID      uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name    string  `gorm:"not null"                  json:"name"`
	Price   float64 `gorm:"not null;check:price > 0"  json:"price"`
	BrandID uint    `gorm:"not null;index"            json:"brand_id"`
	ModelID uint    `gorm:"not null;index"            json:"model_id"`
}

func (Product) TableName() string { return "products" }

type Size struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Label     string `gorm:"column:sizes;not null"    json:"label"`
	ProductID uint   `gorm:"not null;index"           json:"product_id"`
}

func (Size) TableName() string { return "size" }

type Image struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"   json:"id"`
	URL       string `gorm:"column:image_url;not null"  json:"url"`
	ProductID uint   `gorm:"not null;index"             json:"product_id"`
}

func (Image) TableName() string { return "image" }

type ProductItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement"        json:"id"`
	ProductID uint `gorm:"not null;index"                  json:"product_id"`
	Quantity  int  `gorm:"not null;check:quantity > 0"     json:"quantity"`
}

func (ProductItem) TableName() string { return "product_item" }

type Color struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"            json:"id"`
	Label         string `gorm:"column:available_colors;not null"    json:"label"`
	ProductItemID uint   `gorm:"not null;index"                      json:"product_item_id"`
}

func (Color) TableName() string { return "color" }

// Account and order tables. Migrated with the rest of the schema, flows live
// in the auth/checkout collaborator.

type User struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName      string `gorm:"not null"                 json:"first_name"`
	LastName       string `gorm:"not null"                 json:"last_name"`
	Email          string `gorm:"unique;not null"          json:"email"`
	HashedPassword string `gorm:"not null"                 json:"-"`
}

func (User) TableName() string { return "user" }

type BillingAddress struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Country   string `gorm:"not null"                 json:"country"`
	FirstName string `gorm:"not null"                 json:"first_name"`
	LastName  string `gorm:"not null"                 json:"last_name"`
	Address   string `gorm:"not null"                 json:"address"`
	City      string `gorm:"not null"                 json:"city"`
	State     string `gorm:"not null"                 json:"state"`
	Pincode   string `gorm:"not null"                 json:"pincode"`
	MobileNo  string `gorm:"not null"                 json:"mobile_no"`
	UserID    uint   `gorm:"not null;index"           json:"user_id"`
}

func (BillingAddress) TableName() string { return "billing_address" }

type Order struct {
	ID               uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ImgLink          string  `gorm:"not null"                 json:"img_link"`
	Qty              int     `gorm:"not null"                 json:"qty"`
	Name             string  `gorm:"not null"                 json:"name"`
	Color            string  `gorm:"not null"                 json:"color"`
	Size             string  `gorm:"not null"                 json:"size"`
	Price            float64 `gorm:"not null"                 json:"price"`
	UserID           uint    `gorm:"not null;index"           json:"user_id"`
	BillingAddressID uint    `gorm:"not null"                 json:"billing_address_id"`
}

func (Order) TableName() string { return "order_table" }

// All returns every model the schema migrates, catalog tables first so
// AutoMigrate creates FK targets before their referrers.
func All() []any {
	return []any{
		&Category{}, &Brand{}, &Model{},
		&Product{}, &Size{}, &Image{}, &ProductItem{}, &Color{},
		&User{}, &BillingAddress{}, &Order{},
	}
}
