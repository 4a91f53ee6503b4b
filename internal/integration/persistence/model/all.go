package model

// All returns every persisted model in migration order.
func All() []any {
	return []any{
		&UserModel{},
		&SessionModel{},
		&PasswordResetModel{},
		&CategoryModel{},
		&GoalModel{},
		&ActivityModel{},
		&NutritionEntryModel{},
		&TransactionModel{},
		&EmailQueueModel{},
	}
}
