package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"schedules", "shifts", "user_groups", "user_sites", "emails", "users", "groups", "sites"} {
				if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		siteID := uuid.NewString()
		siteName := "The Crown"
		var existing string
		if err := db.QueryRow("SELECT id FROM sites WHERE name = $1", siteName).Scan(&existing); err == nil {
			siteID = existing
			fmt.Println("site already exists:", siteName)
		} else {
			if _, err := db.Exec("INSERT INTO sites (id, name) VALUES ($1, $2)", siteID, siteName); err != nil {
				log.Fatalf("failed to insert site: %v", err)
			}
			fmt.Println("Seeded site:", siteName)
		}

		groupIDs := make(map[string]string)
		for _, name := range []string{"Bar", "Kitchen", "Front of House"} {
			var gid string
			if err := db.QueryRow("SELECT id FROM groups WHERE site_id = $1 AND name = $2", siteID, name).Scan(&gid); err == nil {
				groupIDs[name] = gid
				continue
			}
			gid = uuid.NewString()
			if _, err := db.Exec("INSERT INTO groups (id, site_id, name) VALUES ($1, $2, $3)", gid, siteID, name); err != nil {
				log.Fatalf("failed to insert group %s: %v", name, err)
			}
			groupIDs[name] = gid
			fmt.Println("Seeded group:", name)
		}

		adminEmail := "admin@inntrac.com"
		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		var adminID string
		if err := db.QueryRow("SELECT id FROM users WHERE email = $1", adminEmail).Scan(&adminID); err == nil {
			fmt.Println("admin user already exists:", adminEmail)
			return
		}

		adminID = uuid.NewString()
		barGroup := groupIDs["Bar"]
		if _, err := db.Exec(
			`INSERT INTO users (id, email, first_name, surname, password_hash, is_admin, default_site_id, default_group_id, created_at)
			 VALUES ($1, $2, $3, $4, $5, true, $6, $7, now())`,
			adminID, adminEmail, "Site", "Admin", string(hash), siteID, barGroup,
		); err != nil {
			log.Fatalf("failed to insert admin user: %v", err)
		}

		if _, err := db.Exec("INSERT INTO user_sites (user_id, site_id) VALUES ($1, $2)", adminID, siteID); err != nil {
			log.Fatalf("failed to attach admin to site: %v", err)
		}
		if _, err := db.Exec("INSERT INTO user_groups (user_id, group_id) VALUES ($1, $2)", adminID, barGroup); err != nil {
			log.Fatalf("failed to attach admin to group: %v", err)
		}

		fmt.Println("Seeded admin user:", adminEmail)
	},
}
