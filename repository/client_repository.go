package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/cache"
	"github.com/ismaeltironi-cloud/locadora-pro/utils"
	"github.com/ismaeltironi-cloud/locadora-pro/ws"
)

type ClientRepository struct {
	DB    *gorm.DB
	Cache *cache.Store
	Feed  ws.Publisher
}

func NewClientRepository(db *gorm.DB, c *cache.Store, feed ws.Publisher) *ClientRepository {
	return &ClientRepository{DB: db, Cache: c, Feed: feed}
}

// List returns clients ordered by name. A search term matches the name
// (substring) or the tax id with formatting stripped.
func (r *ClientRepository) List(search string) ([]entity.Client, error) {
	key := cache.ListKey("clients", searchFilter(search))
	if v, ok := r.Cache.Get(key); ok {
		return v.([]entity.Client), nil
	}

	var clients []entity.Client
	q := r.DB.Order("name")
	if search != "" {
		digits := utils.CNPJDigits(search)
		if digits != "" {
			q = q.Where("name LIKE ? OR REPLACE(REPLACE(REPLACE(cnpj,'.',''),'/',''),'-','') LIKE ?",
				"%"+search+"%", "%"+digits+"%")
		} else {
			q = q.Where("name LIKE ?", "%"+search+"%")
		}
	}
	if err := q.Find(&clients).Error; err != nil {
		return nil, err
	}

	r.Cache.Set(key, clients)
	return clients, nil
}

func (r *ClientRepository) FindByID(id string) (*entity.Client, error) {
	key := cache.DetailKey("clients", id)
	if v, ok := r.Cache.Get(key); ok {
		c := v.(entity.Client)
		return &c, nil
	}

	var c entity.Client
	if err := r.DB.First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	r.Cache.Set(key, c)
	return &c, nil
}

// FindByCNPJ matches a tax id given either raw digits or formatted.
func (r *ClientRepository) FindByCNPJ(cnpj string) (*entity.Client, error) {
	digits := utils.CNPJDigits(cnpj)
	var c entity.Client
	err := r.DB.Where("cnpj = ? OR cnpj = ?", digits, FormatCNPJ(digits)).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) Create(c *entity.Client) error {
	if err := r.DB.Create(c).Error; err != nil {
		return err
	}
	r.Cache.InvalidateEntity("clients", c.ID)
	r.Feed.Publish("clients", c.ID, "insert")
	return nil
}

func (r *ClientRepository) Update(id string, updates map[string]any) (*entity.Client, error) {
	res := r.DB.Model(&entity.Client{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	r.Cache.InvalidateEntity("clients", id)
	r.Feed.Publish("clients", id, "update")

	var c entity.Client
	if err := r.DB.First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) Delete(id string) error {
	res := r.DB.Delete(&entity.Client{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.Cache.InvalidateEntity("clients", id)
	r.Feed.Publish("clients", id, "delete")
	return nil
}

// FormatCNPJ renders 14 digits as XX.XXX.XXX/XXXX-XX. Anything else
// passes through unchanged.
func FormatCNPJ(digits string) string {
	if len(digits) != 14 {
		return digits
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s",
		digits[0:2], digits[2:5], digits[5:8], digits[8:12], digits[12:14])
}

func searchFilter(search string) string {
	if search == "" {
		return ""
	}
	return "q=" + search
}
