package config

import (
	"log"

	"cloud-kitchen-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type menuSeed struct {
	Name  string
	Desc  string
	Price float64
	Cat   string
	Veg   bool
	Best  bool
	Sort  int
}

var menuSeeds = []menuSeed{
	{"Paneer Tikka", "Marinated cottage cheese grilled in tandoor with bell peppers", 220, "Starters", true, true, 1},
	{"Chicken Seekh Kebab", "Spiced minced chicken skewers, charcoal grilled", 260, "Starters", false, false, 2},
	{"Aloo Tikki Chaat", "Crispy potato patties with tangy chutneys and yogurt", 150, "Starters", true, false, 3},
	{"Mutton Shammi Kebab", "Melt-in-mouth minced mutton patties with aromatic spices", 300, "Starters", false, true, 4},
	{"Corn Cheese Balls", "Golden fried corn and cheese balls with mint chutney", 180, "Starters", true, false, 5},
	{"Tandoori Chicken", "Half chicken marinated overnight in yogurt & spices", 320, "Starters", false, true, 6},
	{"Butter Chicken", "Creamy tomato gravy with tender tandoori chicken pieces", 300, "Mains", false, true, 1},
	{"Dal Makhani", "Overnight slow-cooked black lentils in buttery gravy", 240, "Mains", true, true, 2},
	{"Mutton Rogan Josh", "Kashmiri-style slow-cooked mutton in aromatic gravy", 360, "Mains", false, true, 3},
	{"Paneer Butter Masala", "Cottage cheese cubes in rich, creamy tomato sauce", 260, "Mains", true, false, 4},
	{"Chole Bhature", "Spiced chickpea curry with fluffy deep-fried bread", 200, "Mains", true, true, 5},
	{"Chicken Biryani", "Fragrant dum-style biryani with tender chicken pieces", 280, "Mains", false, true, 6},
	{"Egg Curry", "Boiled eggs in a rich, spiced onion-tomato gravy", 200, "Mains", false, false, 7},
	{"Palak Paneer", "Fresh spinach gravy with soft cottage cheese cubes", 240, "Mains", true, false, 8},
	{"Butter Naan", "Soft tandoor bread brushed with butter", 50, "Breads & Rice", true, false, 1},
	{"Garlic Naan", "Naan topped with garlic and coriander", 60, "Breads & Rice", true, true, 2},
	{"Laccha Paratha", "Flaky layered whole wheat bread", 55, "Breads & Rice", true, false, 3},
	{"Jeera Rice", "Basmati rice tempered with cumin seeds", 140, "Breads & Rice", true, false, 4},
	{"Veg Pulao", "Fragrant rice with seasonal vegetables", 180, "Breads & Rice", true, false, 5},
	{"Stuffed Kulcha", "Tandoor bread stuffed with spiced potato filling", 80, "Breads & Rice", true, true, 6},
	{"Gulab Jamun", "Soft milk dumplings soaked in rose-scented syrup", 100, "Desserts & Drinks", true, true, 1},
	{"Mango Lassi", "Creamy yogurt smoothie with fresh mango pulp", 120, "Desserts & Drinks", true, true, 2},
	{"Gajar Ka Halwa", "Warm carrot pudding with nuts and khoya", 140, "Desserts & Drinks", true, false, 3},
	{"Masala Chai", "Authentic Indian spiced tea with ginger", 50, "Desserts & Drinks", true, false, 4},
}

// Seed inserts the owner account and the starter menu when absent.
// Safe to run on every boot.
func Seed(db *gorm.DB) error {
	ownerEmail := GetEnv("OWNER_EMAIL", "owner@stonesandspices.com")

	var count int64
	if err := db.Model(&models.AdminUser{}).
		Where("LOWER(email) = LOWER(?)", ownerEmail).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword(
			[]byte(GetEnv("OWNER_PASSWORD", "Admin@2024")), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		owner := models.AdminUser{
			Name:         GetEnv("OWNER_NAME", "Komalatha N"),
			Email:        ownerEmail,
			PasswordHash: string(hash),
			Role:         models.RoleOwner,
			IsActive:     true,
		}
		if err := db.Create(&owner).Error; err != nil {
			return err
		}
		log.Printf("Owner account seeded: %s", ownerEmail)
	}

	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		for _, s := range menuSeeds {
			item := models.MenuItem{
				Name:         s.Name,
				Description:  s.Desc,
				Price:        s.Price,
				Category:     s.Cat,
				IsVeg:        s.Veg,
				IsBestseller: s.Best,
				SpiceLevel:   "medium",
				IsAvailable:  true,
				StockStatus:  models.StockIn,
				IsActive:     true,
				SortOrder:    s.Sort,
			}
			if err := db.Create(&item).Error; err != nil {
				return err
			}
		}
		log.Printf("Menu seeded with %d items", len(menuSeeds))
	}

	return nil
}
