package database

import (
	"context"
	"fmt"
)

// SQL-запросы для работы с заказами
const (
	InsertOrderQuery = `
		INSERT INTO
			orders (id, user_id, name, amount, status, cost, profit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	CountOrdersQuery = `
		SELECT
			count(*)
		FROM
			orders
		WHERE
			user_id = $1
	`
	SelectRecentOrdersQuery = `
		SELECT
			id,
			user_id,
			name,
			amount,
			status,
			cost,
			profit,
			created_at
		FROM
			orders
		WHERE
			user_id = $1
		ORDER BY
			created_at DESC
		LIMIT $2
	`
	SelectMonthlyRevenueQuery = `
		SELECT
			EXTRACT(MONTH FROM created_at)::int,
			SUM(cost + profit),
			SUM(profit)
		FROM
			orders
		WHERE
			user_id = $1
			AND EXTRACT(YEAR FROM created_at)::int = $2
		GROUP BY
			1
		ORDER BY
			1
	`
)

func insertOrder(ctx context.Context, db DBExecutor, o OrderDB) error {
	_, err := db.Exec(ctx, InsertOrderQuery, o.ID, o.UserID, o.Name, o.Amount, o.Status, o.Cost, o.Profit, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания заказа: %w", err)
	}

	return nil
}

// Поиск последних заказов пользователя
func (d *Database) findRecentOrders(ctx context.Context, userID string, limit int) ([]OrderDB, error) {
	rows, err := d.db.Query(ctx, SelectRecentOrdersQuery, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска заказов: %w", err)
	}
	defer rows.Close()

	var result []OrderDB
	for rows.Next() {
		var item OrderDB
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Amount, &item.Status, &item.Cost, &item.Profit, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с заказом: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}

// Выручка и прибыль по месяцам за год; месяцы без заказов не возвращаются.
func (d *Database) findMonthlyRevenue(ctx context.Context, userID string, year int) ([]MonthlyRevenueDB, error) {
	rows, err := d.db.Query(ctx, SelectMonthlyRevenueQuery, userID, year)
	if err != nil {
		return nil, fmt.Errorf("ошибка расчёта выручки: %w", err)
	}
	defer rows.Close()

	var result []MonthlyRevenueDB
	for rows.Next() {
		var item MonthlyRevenueDB
		if err := rows.Scan(&item.Month, &item.Revenue, &item.Profit); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки выручки: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}
