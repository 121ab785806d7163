package postgres

const (
	insertItemSQL = `
INSERT INTO items (item_id, name, rating, address, image_url, url, distance)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

	insertCategorySQL = `INSERT INTO categories (item_id, category) VALUES ($1, $2)`

	getItemSQL = `
SELECT item_id, name, rating, address, image_url, url, distance
FROM items
WHERE item_id = $1
`

	getItemsSQL = `
SELECT item_id, name, rating, address, image_url, url, distance
FROM items
WHERE item_id = ANY($1)
`

	itemExistsSQL = `SELECT EXISTS (SELECT 1 FROM items WHERE item_id = $1)`

	getCategoriesSQL = `SELECT category FROM categories WHERE item_id = $1`

	getCategoriesManySQL = `SELECT item_id, category FROM categories WHERE item_id = ANY($1)`

	userExistsSQL = `SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`

	insertFavoriteSQL = `
INSERT INTO history (user_id, item_id, last_favor_time)
VALUES ($1, $2, $3)
`

	deleteFavoriteSQL = `DELETE FROM history WHERE user_id = $1 AND item_id = $2`

	listFavoriteIDsSQL = `
SELECT item_id
FROM history
WHERE user_id = $1
ORDER BY last_favor_time DESC, item_id ASC
`

	getUserSQL = `
SELECT user_id, password, first_name, last_name
FROM users
WHERE user_id = $1
`

	upsertUserSQL = `
INSERT INTO users (user_id, password, first_name, last_name)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE
SET password = EXCLUDED.password,
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name
`
)
