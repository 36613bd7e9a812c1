package controllers

import (
	"github.com/gin-gonic/gin"

	"atfplatform/backend/models"
)

// Localized user-facing messages; handlers resolve them against the request
// language so the portal can show them directly as toasts.
var messages = map[string]models.LocalizedText{
	"something_went_wrong": models.L("Xəta baş verdi", "Something went wrong", "Произошла ошибка"),
	"invalid_body":         models.L("Yanlış sorğu", "Invalid request", "Неверный запрос"),
	"invalid_credentials":  models.L("E-poçt və ya şifrə yanlışdır", "Invalid email or password", "Неверная почта или пароль"),
	"email_not_verified":   models.L("E-poçt ünvanınız təsdiqlənməyib", "Your email address is not verified", "Ваш адрес почты не подтверждён"),
	"email_taken":          models.L("Bu e-poçt artıq qeydiyyatdan keçib", "This email is already registered", "Эта почта уже зарегистрирована"),
	"password_mismatch":    models.L("Şifrələr uyğun gəlmir", "Passwords do not match", "Пароли не совпадают"),
	"wrong_password":       models.L("Cari şifrə yanlışdır", "Current password is wrong", "Текущий пароль неверен"),
	"code_not_numeric":     models.L("HS kod yalnız rəqəmlərdən ibarət olmalıdır", "HS code must contain digits only", "HS код должен состоять только из цифр"),
	"code_required":        models.L("HS kod daxil edin", "Enter an HS code", "Введите HS код"),
	"approvals_required":   models.L("Ən azı bir icazə seçin", "Select at least one approval", "Выберите хотя бы одно разрешение"),
	"wizard_expired":       models.L("Müraciət sessiyası bitib, yenidən başlayın", "Application session expired, start over", "Сессия заявки истекла, начните заново"),
	"driver_required":      models.L("Sürücü məlumatları tələb olunur", "Driver details are required", "Требуются данные водителя"),
	"name_required":        models.L("Ad tələb olunur", "Name is required", "Требуется имя"),
	"message_required":     models.L("Mesaj boş ola bilməz", "Message cannot be empty", "Сообщение не может быть пустым"),
}

func lang(c *gin.Context) string {
	return c.GetString("lang")
}

func msg(c *gin.Context, key string) string {
	if m, ok := messages[key]; ok {
		return m.Resolve(lang(c))
	}
	return messages["something_went_wrong"].Resolve(lang(c))
}

// emptyData is the not-found payload: the portal treats 404 as "no data",
// never as an error toast.
func emptyData(c *gin.Context) {
	c.JSON(404, gin.H{"data": []any{}})
}
