package bot

// User-facing texts. The bot's audience is Russian-speaking; ingredient
// terms are translated to English before hitting the catalog API.
const (
	msgWelcome = "👨‍🍳 Привет! Я бот для поиска рецептов.\n\n" +
		"🔍 Доступные команды:\n" +
		"/find_by_ingredients - Поиск по ингредиентам\n" +
		"/random - Случайный рецепт\n" +
		"/favorites - Избранные рецепты\n" +
		"/help - Помощь"

	msgChooseDiet       = "Выберите тип диеты:"
	msgChooseIngredient = "Выберите ингредиент из списка:"
	msgEnterIngredient  = "Введите ваш ингредиент:"
	msgRecipeNotFound   = "Ошибка: рецепт не найден или API не отвечает."

	msgNoFavorites = "⭐ У вас пока нет избранных рецептов.\n" +
		"Чтобы добавить рецепт, нажмите кнопку 'Сохранить' при просмотре любого рецепта"
	msgFavoritesHeader   = "⭐ Ваши избранные рецепты:\n\n"
	msgFavoriteSaved     = "✅ Рецепт добавлен в избранное"
	msgFavoriteDuplicate = "ℹ️ Рецепт уже в избранном"
	msgFavoriteInvalid   = "⚠️ Не удалось извлечь данные рецепта"
	msgFavoriteError     = "⚠️ Ошибка при сохранении"
	msgFavoriteRemoved   = "🗑️ Рецепт удален из избранного"
	msgFavoriteMissing   = "⚠️ Рецепт не найден в избранном"
	msgNoFavoritesToDrop = "У вас нет избранных рецептов для удаления"
	msgChooseToDelete    = "🗑️ Выберите рецепт для удаления:\n\n"

	msgBanned        = "🚫 Вы заблокированы и не можете использовать бота."
	msgBannedShort   = "🚫 Вы заблокированы"
	msgAdminsOnly    = "🚫 Эта команда доступна только администраторам"
	msgEnterBanID    = "🚫 Блокировка пользователя\n\nВведите ID пользователя для блокировки.\nДля отмены используйте /cancel"
	msgEnterUnbanID  = "✅ Разблокировка пользователя\n\nВведите ID пользователя для разблокировки.\nДля отмены используйте /cancel"
	msgBadUserID     = "⚠️ Введите корректный числовой ID пользователя"
	msgActionAborted = "❌ Действие отменено"

	msgUnavailable = "⚠️ Сервис временно недоступен. Попробуйте позже."
)
