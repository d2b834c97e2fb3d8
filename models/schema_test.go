package models_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"gorm.io/gorm/schema"

	"github.com/quickbazaar/marketplace-core/models"
)

var schemaModels = []any{
	&models.User{},
	&models.Group{},
	&models.Permission{},
	&models.Product{},
	&models.Cart{},
	&models.CartItem{},
	&models.BuyerPurchaseHistory{},
	&models.SellerPurchaseHistory{},
	&models.Review{},
}

// The delete-policy table is the schema contract; every declared policy must
// match the ON DELETE clause GORM derives from the struct tags. A belongs-to
// relation whose inverse is declared on the owning side parses to no
// constraint of its own, so for those the inverse must carry the policy.
func TestDeletePolicyContract(t *testing.T) {
	cache := &sync.Map{}
	for _, fk := range models.ForeignKeyPolicies() {
		s, err := schema.Parse(fk.Model, cache, schema.NamingStrategy{})
		if err != nil {
			t.Fatalf("parse %T: %v", fk.Model, err)
		}
		rel, ok := s.Relationships.Relations[fk.Relation]
		if !ok {
			t.Fatalf("%T has no relation %q", fk.Model, fk.Relation)
		}
		constraint := rel.ParseConstraint()
		if constraint == nil {
			if rel.Type != schema.BelongsTo {
				t.Fatalf("%T.%s declares no foreign key constraint", fk.Model, fk.Relation)
			}
			inverse := inverseConstraint(rel)
			if inverse == nil {
				t.Fatalf("%T.%s: neither side declares a foreign key constraint", fk.Model, fk.Relation)
			}
			constraint = inverse
		}
		if constraint.OnDelete != string(fk.Policy) {
			t.Fatalf("%T.%s: ON DELETE %q, want %q", fk.Model, fk.Relation, constraint.OnDelete, fk.Policy)
		}
	}
}

// inverseConstraint finds the constraint parsed on the owning side of a
// belongs-to relation that is declared on both ends.
func inverseConstraint(rel *schema.Relationship) *schema.Constraint {
	for _, r := range rel.FieldSchema.Relationships.Relations {
		if r == rel || r.FieldSchema != rel.Schema {
			continue
		}
		if c := r.ParseConstraint(); c != nil {
			return c
		}
	}
	return nil
}

// Every constraint GORM parses from the struct tags must appear in the
// delete-policy table. A relation tag that resolves to a constraint nobody
// listed is a schema defect, whatever its ON DELETE action.
func TestNoConstraintOutsidePolicyTable(t *testing.T) {
	policies := make(map[string]models.DeletePolicy)
	for _, fk := range models.ForeignKeyPolicies() {
		policies[fmt.Sprintf("%T.%s", fk.Model, fk.Relation)] = fk.Policy
	}
	cache := &sync.Map{}
	for _, model := range schemaModels {
		s, err := schema.Parse(model, cache, schema.NamingStrategy{})
		if err != nil {
			t.Fatalf("parse %T: %v", model, err)
		}
		for name, rel := range s.Relationships.Relations {
			if strings.HasPrefix(name, "_") {
				continue // GORM's hidden mirror of a relation checked on its declaring side
			}
			if rel.JoinTable != nil {
				continue // join-table rows live and die with the join table
			}
			constraint := rel.ParseConstraint()
			if constraint == nil {
				continue
			}
			key := fmt.Sprintf("%T.%s", model, name)
			policy, ok := policies[key]
			if !ok {
				t.Fatalf("%s parses constraint %q but is not in the delete-policy table", key, constraint.Name)
			}
			if constraint.OnDelete != string(policy) {
				t.Fatalf("%s: ON DELETE %q, want %q", key, constraint.OnDelete, policy)
			}
		}
	}
}

// The migrated schema must carry exactly the contracted foreign keys, each
// referencing the contracted table with the contracted ON DELETE action.
// This checks the SQL that migration actually produced, not just the tags.
func TestMigratedForeignKeys(t *testing.T) {
	db := memdb(t)

	type fkRow struct {
		RefTable string `gorm:"column:table"`
		From     string `gorm:"column:from"`
		OnDelete string `gorm:"column:on_delete"`
	}
	type fkWant struct {
		refTable string
		onDelete string
	}

	want := map[string]map[string]fkWant{
		"products": {
			"owner_id": {"users", "CASCADE"},
		},
		"carts": {
			"user_id": {"users", "CASCADE"},
		},
		"cart_items": {
			"cart_id":    {"carts", "CASCADE"},
			"product_id": {"products", "CASCADE"},
		},
		"buyer_purchase_histories": {
			"buyer_id":   {"users", "CASCADE"},
			"product_id": {"products", "SET NULL"},
			"seller_id":  {"users", "SET NULL"},
		},
		"seller_purchase_histories": {
			"seller_id":  {"users", "CASCADE"},
			"product_id": {"products", "SET NULL"},
			"sold_to_id": {"users", "SET NULL"},
		},
		"reviews": {
			"product_id": {"products", "CASCADE"},
			"buyer_id":   {"users", "CASCADE"},
			"seller_id":  {"users", "CASCADE"},
		},
	}

	for table, cols := range want {
		var rows []fkRow
		if err := db.Raw("PRAGMA foreign_key_list(" + table + ")").Scan(&rows).Error; err != nil {
			t.Fatalf("foreign_key_list(%s): %v", table, err)
		}
		seen := make(map[string]bool)
		for _, row := range rows {
			w, ok := cols[row.From]
			if !ok {
				t.Fatalf("%s.%s: unexpected foreign key referencing %s", table, row.From, row.RefTable)
			}
			if row.RefTable != w.refTable || row.OnDelete != w.onDelete {
				t.Fatalf("%s.%s: REFERENCES %s ON DELETE %s, want %s ON DELETE %s",
					table, row.From, row.RefTable, row.OnDelete, w.refTable, w.onDelete)
			}
			seen[row.From] = true
		}
		for col := range cols {
			if !seen[col] {
				t.Fatalf("%s.%s: contracted foreign key missing from migrated schema", table, col)
			}
		}
	}
}

// Group and permission memberships must live in distinct join tables.
func TestUserRelationNamesUnique(t *testing.T) {
	s, err := schema.Parse(&models.User{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatal(err)
	}
	groups, ok := s.Relationships.Relations["Groups"]
	if !ok || groups.JoinTable == nil {
		t.Fatal("User.Groups is not a join-table relation")
	}
	perms, ok := s.Relationships.Relations["Permissions"]
	if !ok || perms.JoinTable == nil {
		t.Fatal("User.Permissions is not a join-table relation")
	}
	if groups.JoinTable.Table == perms.JoinTable.Table {
		t.Fatalf("join tables collide: %q", groups.JoinTable.Table)
	}
}
