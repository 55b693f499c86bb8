// Package seed bootstraps a fresh installation with a default organization
// and a super_admin user so the instance is usable before any other account
// exists.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gridpeak/voltra/internal/config"
	"github.com/gridpeak/voltra/internal/identity"
	orgdomain "github.com/gridpeak/voltra/internal/organization/domain"
	userdomain "github.com/gridpeak/voltra/internal/user/domain"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultOrgName = "System"
	defaultOrgEIC  = "40X000000000000S"
)

// EnsureBootstrapAdmin seeds the default organization and, when bootstrap
// credentials are configured, a super_admin user. It is idempotent across
// restarts.
func EnsureBootstrapAdmin(db *gorm.DB, cfg config.Config, node *snowflake.Node, log *zap.Logger) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		org, err := ensureDefaultOrg(ctx, tx, node)
		if err != nil {
			return err
		}

		if cfg.BootstrapAdminUsername == "" || cfg.BootstrapAdminPassword == "" {
			return nil
		}
		created, err := ensureAdminUser(ctx, tx, node, cfg, org.ID)
		if err != nil {
			return err
		}
		if created {
			log.Info("bootstrap admin created", zap.String("username", cfg.BootstrapAdminUsername))
		}
		return nil
	})
}

func ensureDefaultOrg(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (*orgdomain.Organization, error) {
	var org orgdomain.Organization
	err := tx.WithContext(ctx).Where("name = ?", defaultOrgName).First(&org).Error
	if err == nil {
		return &org, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	org = orgdomain.Organization{
		ID:   node.Generate(),
		Name: defaultOrgName,
		EIC:  defaultOrgEIC,
	}
	if err := tx.WithContext(ctx).Create(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func ensureAdminUser(ctx context.Context, tx *gorm.DB, node *snowflake.Node, cfg config.Config, orgID snowflake.ID) (bool, error) {
	var user userdomain.User
	err := tx.WithContext(ctx).Where("username = ?", cfg.BootstrapAdminUsername).First(&user).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	user = userdomain.User{
		ID:             node.Generate(),
		Username:       cfg.BootstrapAdminUsername,
		PasswordHash:   string(hashed),
		Role:           identity.RoleSuperAdmin,
		OrganizationID: orgID,
	}
	if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
		return false, err
	}
	return true, nil
}
