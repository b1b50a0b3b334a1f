package localization

var stringsEN = map[string]string{
	"currency_format_string": "{value} {symbol}",
	"in_cart_format_string":  "<i>{quantity} in cart</i>",
	"product_format_string":  "<b>{name}</b>\n\n{description}\n\n{price}\n\n<b>{cart}</b>",

	"order_number":             "Order #{id}",
	"order_format_string":      "Customer {user}\nCreated {date}\n\n{items}\nTOTAL: <b>{value}</b>\n\nNotes: {notes}\n",
	"user_order_format_string": "{status_emoji} <b>Order {status_text}</b>\n{items}\nTotal: <b>{value}</b>\n\nNotes: {notes}\n",
	"refund_reason":            "Refund reason:\n{reason}",

	"conversation_after_start":                     "Hi!\nWelcome to our shop!",
	"conversation_open_user_menu":                  "What would you like to do?\n💰 Your wallet: {credit}",
	"conversation_open_admin_menu":                 "You are a 💼 <b>Manager</b> of this shop!\nWhat would you like to do?",
	"conversation_choose_item":                     "Help yourself ☺️",
	"conversation_select_product_size":             "Pick a size:",
	"conversation_check_cart":                      "<b>Your cart contains:</b>\n\n{cart_str}\n\nTotal: <b>{total}</b>",
	"conversation_live_orders_start":               "You are in <b>Live Orders</b> mode\nNew orders will appear in this chat in real time.",
	"conversation_live_orders_stop":                "<i>Press Stop in this chat to exit this mode.</i>",
	"conversation_open_help_menu":                  "How can I help you?",
	"conversation_language_select":                 "Select a language:",
	"conversation_switch_to_user_mode":             "You have switched to 👤 Customer mode.\nTo get back to Manager mode, restart the conversation with /start.",
	"conversation_expired":                         "🥱 The bot took a nap\nSend /start whenever you want to continue shopping.",
	"conversation_admin_select_product":            "✏️ Which product do you want to edit?",
	"conversation_admin_select_product_to_delete":  "❌ Which product do you want to delete?",
	"conversation_admin_select_category":           "✏️ Which category do you want to edit?",
	"conversation_admin_select_category_to_delete": "❌ Which category do you want to delete?",
	"conversation_admin_select_parent_category":    "Pick a parent category from the list",
	"conversation_admin_select_user":               "Pick a user to edit.",
	"conversation_confirm_admin_promotion":         "Are you sure you want to promote this user to 💼 Manager?\nThis cannot be undone!",

	"menu_order":              "🍕 Menu",
	"menu_order_status":       "🛍 My orders",
	"menu_language":           "🌐 Language",
	"menu_help":               "❓ Help",
	"menu_bot_info":           "ℹ️ Bot info",
	"menu_cart":               "🛒 Cart",
	"menu_location":           "📍 Send my location",
	"menu_pickup":             "🛍 Pickup",
	"menu_share_phone":        "📱 Share my number",
	"menu_confirm":            "✅ Confirm!",
	"menu_no_category":        "❌ No category",
	"menu_products":           "📝️ Products",
	"menu_categories":         "📂 Categories",
	"menu_orders":             "📦 Orders",
	"menu_user_mode":          "👤 Customer mode",
	"menu_add_product":        "✨ New product",
	"menu_add_category":       "✨ New category",
	"menu_delete_product":     "❌ Delete product",
	"menu_delete_category":    "❌ Delete category",
	"menu_cancel":             "🔙 Cancel",
	"menu_back":               "🔙 Back",
	"menu_home":               "🏠 Home",
	"menu_skip":               "⏭ Skip",
	"menu_done":               "✅️ Done",
	"menu_complete":           "✅ Complete",
	"menu_refund":             "✴️ Refund",
	"menu_stop":               "🛑 Stop",
	"menu_remove_from_cart":   "➖ Remove",
	"menu_guide":              "📖 Guide",
	"menu_contact_shopkeeper": "👨‍💼 Contacts",
	"menu_edit_admins":        "🏵 Edit managers",

	"emoji_yes":           "✅",
	"emoji_no":            "🚫",
	"emoji_refunded":      "✴️",
	"emoji_completed":     "✅",
	"emoji_not_processed": "*️⃣",
	"text_completed":      "completed",
	"text_refunded":       "refunded",
	"text_not_processed":  "pending",
	"text_pickup":         "🛍 Pickup",
	"text_location":       "📍 By location",
	"text_not_defined":    "Not set",

	"ask_product_name":        "What should we name the product?",
	"ask_category_name":       "What should we name the category?",
	"ask_product_description": "What will the product description be?",
	"ask_product_sizes": "If the product comes in different sizes, list them in the format:\n\n<i>size [description] - price</i>\n\n" +
		"For example:\n<code>12 in - 35000\n14 in - 45000</code>\n\nSend <code>X</code> if sizes are not needed",
	"current_sizes":          "Current sizes:\n<code>{sizes_str}</code>\n\n<i>Press Skip to keep the sizes unchanged.</i>",
	"ask_product_price":      "How much will it cost?\nSend <code>X</code> if the product is unavailable right now.",
	"ask_product_image":      "🖼 Shall we add a product photo?\n\n<i>Send a photo, or Skip this step.</i>",
	"ask_product_category":   "Pick a category for the product",
	"ask_order_notes":        "Leave a note for the order\n\n<i>Write your message, or press Skip to leave no note.</i>",
	"ask_final_confirmation": "<b>Your order:</b>\n{cart_str}\n\n<b>Address:</b>\n<i>{address}</i>\n\n<b>Total:</b>\n{total_amount}\n\n<b>Notes:</b>\n<i>{comment}</i>",
	"ask_for_address":        "Send your full address or a location.\n\n<i>If you prefer to pick the order up yourself, press Pickup</i>",
	"ask_for_phone":          "Send your phone number in the format:\n<code>+1 555 123 45 67</code>\n\n<i>Or press Share my number</i>",
	"ask_refund_reason":      "Describe the refund reason.\nIt will be shown to the 👤 Customer.",
	"edit_current_value":     "Current value:\n<pre>{value}</pre>\n\n<i>Press Skip to keep the value unchanged.</i>",
	"not_in_price_list":      "0 - not on the menu",
	"downloading_image":      "Downloading the photo!\nThis might take a moment...",

	"admin_properties":     "<b>Permissions of {name}:</b>",
	"prop_edit_products":   "Edit products",
	"prop_receive_orders":  "Receive orders",
	"prop_display_on_help": "Show to customers",

	"error_cart_empty":            "Your cart is still empty ☹️",
	"error_duplicate_name":        "️⚠️ A product with this name already exists.",
	"error_invalid_phone":         "⚠️ That does not look like a phone number, try again.",
	"error_order_already_cleared": "⚠️ This order has already been processed.",
	"error_no_orders":             "⚠️ You have not placed any orders yet, so there is nothing here.",
	"error_user_does_not_exist":   "⚠️ No such user.",
	"error_product_not_found":     "⚠️ This product is no longer available.",
	"error_category_not_found":    "⚠️ This category is gone.",
	"fatal_conversation_exception": "☢️ Oh no! An <b>error</b> interrupted our conversation\n" +
		"Please send /start to begin again.",

	"success_product_removed_from_cart": "Removed from cart:\n\n{product}",
	"success_product_added_to_cart":     "Added to cart:\n\n{name} x{qty}",
	"success_product_edited":            "✅ Product created/updated!",
	"success_product_deleted":           "✅ Product deleted!",
	"success_added_category":            "✅ Category {name} created!",
	"success_edited_category":           "✅ Category {name} updated!",
	"success_category_deleted":          "✅ Category deleted!",
	"success_order_created":             "✅ Order placed!\n{order}",
	"success_order_refunded":            "✴️ Order #{order_id} has been refunded.",

	"notification_order_placed":    "A new order has been placed:\n{order}",
	"notification_order_completed": "Your order has been completed!\n{order}",
	"notification_order_refunded":  "Your order has been cancelled. The money was refunded!\n{order}",

	"help_msg":           "The guide is available here:\n{guide_url}",
	"contact_shopkeeper": "The following staff members are available right now and can help:\n{shopkeepers}",
	"bot_info": "This bot takes orders in private chats.\n" +
		"Every conversation lives in its own session and goes to sleep after a period of inactivity.",
}
