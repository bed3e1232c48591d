package models

type SecondaryRecord struct {
	ID        int64         `gorm:"column:id;primaryKey;autoIncrement:false"`
	PrimaryID int64         `gorm:"column:primary_id;not null;uniqueIndex:relgen_secondary_primary_idx"`
	Primary   PrimaryRecord `gorm:"foreignKey:PrimaryID;references:ID;constraint:OnDelete:CASCADE"`
	Record    string        `gorm:"column:record;type:text;not null"`
}

func (SecondaryRecord) TableName() string {
	return "relgen_secondary"
}
