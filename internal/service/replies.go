package service

// Reply texts of the bank «Финанс» assistant
const (
	replyWelcome = "Добро пожаловать в чат-бот банка «Финанс»! " +
		"Для начала введите ваш ID клиента (6 цифр):"
	replyMenu = "Добрый день, клиент %s! Чем могу помочь?\n" +
		"• Узнать баланс\n" +
		"• Заблокировать карту\n" +
		"• Курс валют\n" +
		"• Контакты отделений"
	replyBadFormat    = "ID должен состоять из 6 цифр. Попробуйте еще раз:"
	replyWrongID      = "Неверный ID. Попробуйте еще раз:"
	replyLockout      = "Слишком много попыток. Обратитесь в отделение."
	replyReauth       = "Требуется аутентификация. Введите ваш ID:"
	replyClarify      = "Уточните, пожалуйста, что вы хотите сделать?"
	replyBalance      = "На вашем счете: %.2f руб."
	replyRates        = "Курс ЦБ на сегодня:\n%s"
	replyConfirmBlock = "Вы уверены, что хотите заблокировать карту? (да/нет)"
	replyCardBlocked  = "Карта заблокирована. Что еще вас интересует?"
	replyBlockCancel  = "Блокировка отменена. Что еще вас интересует?"
	replyYesOrNo      = "Пожалуйста, ответьте «да» или «нет»."
	replyDone         = "Операция выполнена успешно! Что еще вас интересует?"
	replyClosed       = "Сессия завершена. Обратитесь в отделение банка."
	replyUnavailable  = "Извините, сервис временно недоступен. Попробуйте еще раз."
	replyRestart      = "Произошла ошибка. Пожалуйста, начните заново."
)
