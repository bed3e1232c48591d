package models

type PrimaryRecord struct {
	ID     int64  `gorm:"column:id;primaryKey;autoIncrement:false"`
	Record string `gorm:"column:record;type:text;not null"`
}

func (PrimaryRecord) TableName() string {
	return "relgen_primary"
}
