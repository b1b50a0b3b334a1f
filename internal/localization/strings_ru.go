package localization

// Русский бандл. Тексты наследуют стиль оригинальных строк магазина.
var stringsRU = map[string]string{
	"currency_format_string": "{value} {symbol}",
	"in_cart_format_string":  "<i>{quantity} в корзине</i>",
	"product_format_string":  "<b>{name}</b>\n\n{description}\n\n{price}\n\n<b>{cart}</b>",

	"order_number":             "Заказ #{id}",
	"order_format_string":      "Покупатель {user}\nСоздано {date}\n\n{items}\nИТОГО: <b>{value}</b>\n\nСообщение: {notes}\n",
	"user_order_format_string": "{status_emoji} <b>Заказ {status_text}</b>\n{items}\nИтого: <b>{value}</b>\n\nСообщение: {notes}\n",
	"refund_reason":            "Причина возврата:\n{reason}",

	"conversation_after_start":                     "Привет!\nДобро пожаловать в наш магазин!",
	"conversation_open_user_menu":                  "Что бы Вы хотели сделать?\n💰 Ваш кошелек: {credit}",
	"conversation_open_admin_menu":                 "Вы 💼 <b>Менеджер</b> этого магазина!\nЧто бы Вы хотели сделать?",
	"conversation_choose_item":                     "Выбирайте на здоровье ☺️",
	"conversation_select_product_size":             "Выберите размер блюда:",
	"conversation_check_cart":                      "<b>У вас в корзине:</b>\n\n{cart_str}\n\nИтого: <b>{total}</b>",
	"conversation_live_orders_start":               "Вы в режиме <b>Новые заказы</b>\nНовые заказы будут появляться в этом чате в реальном времени.",
	"conversation_live_orders_stop":                "<i>Нажмите Стоп в этом чате, чтобы остановить этот режим.</i>",
	"conversation_open_help_menu":                  "Чем могу Вам помочь?",
	"conversation_language_select":                 "Выберите язык:",
	"conversation_switch_to_user_mode":             "Вы перешли в режим 👤 Покупателя.\nЧтобы вернуться в режим Менеджера, перезапустите беседу командой /start.",
	"conversation_expired":                         "🥱 Бот прилег отдохнуть\nЕсли хотите продолжить покупки, напишите /start.",
	"conversation_admin_select_product":            "✏️ Какой продукт необходимо отредактировать?",
	"conversation_admin_select_product_to_delete":  "❌ Какой продукт необходимо удалить?",
	"conversation_admin_select_category":           "✏️ Какую категорию необходимо отредактировать?",
	"conversation_admin_select_category_to_delete": "❌ Какую категорию необходимо удалить?",
	"conversation_admin_select_parent_category":    "Выберите родительскую категорию из списка",
	"conversation_admin_select_user":               "Выберите пользователя для редактирования.",
	"conversation_confirm_admin_promotion":         "Вы уверены, что хотите повысить этого пользователя до 💼 Менеджера?\nЭто действие нельзя отменить!",

	"menu_order":              "🍕 Меню",
	"menu_order_status":       "🛍 Мои заказы",
	"menu_language":           "🌐 Язык",
	"menu_help":               "❓ Помощь",
	"menu_bot_info":           "ℹ️ Информация о боте",
	"menu_cart":               "🛒 Корзина",
	"menu_location":           "📍 Отправить мою геолокацию",
	"menu_pickup":             "🛍 Самовывоз",
	"menu_share_phone":        "📱 Поделиться номером",
	"menu_confirm":            "✅ Подтверждаю!",
	"menu_no_category":        "❌ Без категории",
	"menu_products":           "📝️ Продукты",
	"menu_categories":         "📂 Категории",
	"menu_orders":             "📦 Заказы",
	"menu_user_mode":          "👤 Режим покупателя",
	"menu_add_product":        "✨ Новый продукт",
	"menu_add_category":       "✨ Новая категория",
	"menu_delete_product":     "❌ Удалить продукт",
	"menu_delete_category":    "❌ Удалить категорию",
	"menu_cancel":             "🔙 Отмена",
	"menu_back":               "🔙 Назад",
	"menu_home":               "🏠 Домой",
	"menu_skip":               "⏭ Пропустить",
	"menu_done":               "✅️ Готово",
	"menu_complete":           "✅ Готово",
	"menu_refund":             "✴️ Возврат средств",
	"menu_stop":               "🛑 Стоп",
	"menu_remove_from_cart":   "➖ Удалить",
	"menu_guide":              "📖 Инструкция",
	"menu_contact_shopkeeper": "👨‍💼 Контакты",
	"menu_edit_admins":        "🏵 Изменить менеджеров",

	"emoji_yes":           "✅",
	"emoji_no":            "🚫",
	"emoji_refunded":      "✴️",
	"emoji_completed":     "✅",
	"emoji_not_processed": "*️⃣",
	"text_completed":      "выполнен",
	"text_refunded":       "возмещен",
	"text_not_processed":  "ожидает",
	"text_pickup":         "🛍 Самовывоз",
	"text_location":       "📍 По геолокации",
	"text_not_defined":    "Не назначено",

	"ask_product_name":        "Как назовем продукт?",
	"ask_category_name":       "Как назовем категорию?",
	"ask_product_description": "Каким будет описание продукта?",
	"ask_product_sizes": "Если у продукта есть разные размеры, пропишите их в формате:\n\n<i>размер [описание] - цена</i>\n\n" +
		"Например:\n<code>32 см - 35000\n36 см - 45000</code>\n\nВведите <code>X</code> если размеры блюда не требуются",
	"current_sizes":          "Текущие размеры:\n<code>{sizes_str}</code>\n\n<i>Нажмите Пропустить, чтобы оставить размеры без изменений.</i>",
	"ask_product_price":      "Какова будет цена?\nВведите <code>X</code> если продукт сейчас недоступен.",
	"ask_product_image":      "🖼 Добавим фото продукта?\n\n<i>Пришлите фото, или Пропустите этот шаг.</i>",
	"ask_product_category":   "Выберите категорию товара",
	"ask_order_notes":        "Оставьте комментарий к заказу\n\n<i>Напишите Ваше сообщение, или выберите Пропустить, чтобы не оставлять заметку.</i>",
	"ask_final_confirmation": "<b>Ваш заказ:</b>\n{cart_str}\n\n<b>Адрес:</b>\n<i>{address}</i>\n\n<b>Общая сумма:</b>\n{total_amount}\n\n<b>Комментарий:</b>\n<i>{comment}</i>",
	"ask_for_address":        "Отправьте полный адрес или геолокацию.\n\n<i>Если желаете забрать заказ самостоятельно, выберите Самовывоз</i>",
	"ask_for_phone":          "Отправьте свой номер телефона в формате:\n<code>+998 90 123 45 67</code>\n\n<i>Или нажмите Поделиться номером</i>",
	"ask_refund_reason":      "Сообщите причину возврата средств.\nПричина будет видна 👤 Покупателю.",
	"edit_current_value":     "Текущее значение:\n<pre>{value}</pre>\n\n<i>Нажмите Пропустить, чтобы оставить значение без изменений.</i>",
	"not_in_price_list":      "0 - не включено в меню",
	"downloading_image":      "Я загружаю фото!\nЭто может занять некоторое время...",

	"admin_properties":     "<b>Доступы пользователя {name}:</b>",
	"prop_edit_products":   "Редактировать продукты",
	"prop_receive_orders":  "Получать заказы",
	"prop_display_on_help": "Показывать покупателям",

	"error_cart_empty":            "Ваша корзина пока пуста ☹️",
	"error_duplicate_name":        "️⚠️ Продукт с таким именем уже существует.",
	"error_invalid_phone":         "⚠️ Не похоже на номер телефона, попробуйте еще раз.",
	"error_order_already_cleared": "⚠️ Этот заказ уже был выполнен ранее.",
	"error_no_orders":             "⚠️ Вы еще не сделали ни одного заказа, поэтому здесь пусто.",
	"error_user_does_not_exist":   "⚠️ Нет такого пользователя.",
	"error_product_not_found":     "⚠️ Этот продукт больше не доступен.",
	"error_category_not_found":    "⚠️ Этой категории больше нет.",
	"fatal_conversation_exception": "☢️ Вот беда! <b>Ошибка</b> прервала наше общение\n" +
		"Пожалуйста, напишите /start чтобы начать заново.",

	"success_product_removed_from_cart": "Удалено из корзины:\n\n{product}",
	"success_product_added_to_cart":     "Добавлено в корзину:\n\n{name} x{qty}",
	"success_product_edited":            "✅ Продукт успешно создан/обновлен!",
	"success_product_deleted":           "✅ Продукт успешно удален!",
	"success_added_category":            "✅ Категория {name} успешно создана!",
	"success_edited_category":           "✅ Категория {name} успешно обновлена!",
	"success_category_deleted":          "✅ Категория успешно удалена!",
	"success_order_created":             "✅ Заказ успешно создан!\n{order}",
	"success_order_refunded":            "✴️ Средства по заказу #{order_id} были возвращены.",

	"notification_order_placed":    "Получен новый заказ:\n{order}",
	"notification_order_completed": "Ваш заказ успешно выполнен!\n{order}",
	"notification_order_refunded":  "Ваш заказ отменен. Средства возвращены!\n{order}",

	"help_msg":           "Инструкция доступна по этому адресу:\n{guide_url}",
	"contact_shopkeeper": "Следующие сотрудники доступны сейчас и могут помочь:\n{shopkeepers}",
	"bot_info": "Этот бот создан для приема заказов в частных чатах.\n" +
		"Каждая беседа живет в собственной сессии и засыпает после периода неактивности.",
}
