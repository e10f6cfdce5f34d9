package inits

import (
	"college-portal/app/server/models"
	"fmt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func DB(conn string, adminUsername string, adminPassword string) (db *gorm.DB, err error) {
	// 打开连接
	if db, err = gorm.Open(postgres.Open(conn), &gorm.Config{}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 迁移
	if err = mig(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 初始化启动数据
	if err = initData(db, adminUsername, adminPassword); err != nil {
		return nil, fmt.Errorf("failed to init data into database: %w", err)
	}

	// 返回
	return db, nil
}

func mig(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.Notice{},
		&models.Event{},
		&models.Query{},
	)
}

func initData(db *gorm.DB, username string, password string) (err error) {
	if username == "" || password == "" {
		// 没有配置初始管理员，需要使用 create-admin 命令创建
		return nil
	}

	// 查询现有记录数量
	var counter int64

	if err = db.Model(&models.Account{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get account count: %w", err)
	} else if counter == 0 { // 没有任何账户，添加初始管理员
		admin := &models.Account{
			Username: username,
			IsAdmin:  true,
		}
		admin.SetPassword(password)
		if err = db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin account: %w", err)
		}
	}

	// 已有数据或全部导入成功
	return nil
}
