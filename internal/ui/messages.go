// Package ui holds every user-facing string and keyboard layout. The bot
// speaks Persian; formatting uses Telegram Markdown.
package ui

import (
	"fmt"
	"strings"

	"github.com/FardadA/samp-crush/internal/domain/model"
)

const (
	MsgWelcomeBack       = "به منوی اصلی خوش آمدید! چه کاری می‌خواهید انجام دهید؟"
	MsgGeneralError      = "متاسفانه مشکلی پیش آمده. لطفا دوباره تلاش کنید."
	MsgChooseOption      = "لطفا یکی از گزینه‌های موجود را انتخاب کنید."
	MsgSectionSoon       = "این بخش به زودی فعال می‌شود... صبور باشید!"
	MsgAccessDenied      = "شما دسترسی ادمین ندارید."
	MsgAdminClaimed      = "👑 شما به عنوان ادمین ربات تعیین شدید."
	MsgOperationCanceled = "عملیات لغو شد."

	MsgRegistrationGuide = "به نظر می‌رسد اولین بار است که وارد می‌شوید یا اطلاعات شما ناقص است. لطفاً اطلاعات اولیه خود را تکمیل کنید.\n\nابتدا جنسیت خود را انتخاب کنید:"
	MsgSelectProvince    = "لطفا استان خود را انتخاب کنید:"
	MsgSelectCity        = "لطفا شهر خود را انتخاب کنید:"
	MsgRegistrationDone  = "ثبت‌نام اولیه شما تکمیل شد. اکنون به منوی اصلی هدایت می‌شوید."

	MsgJoinPrompt        = "برای استفاده از ربات، ابتدا باید در کانال‌های زیر عضو شوید:"
	MsgJoinChecking      = "در حال بررسی وضعیت عضویت..."
	MsgJoinStillUnjoined = "هنوز در تمام کانال‌ها عضو نشده‌اید. لطفا بررسی کنید:"
	MsgJoinConfirmed     = "عضویت شما تایید شد."

	MsgNamePrompt      = "لطفا نام خود را وارد کنید:"
	MsgNameInvalid     = "نام وارد شده معتبر نیست. لطفا یک نام غیرخالی وارد کنید."
	MsgAgePrompt       = "لطفا سن خود را به عدد وارد کنید (مثلا: ۱۷):"
	MsgPhonePrompt     = "لطفا شماره تماس خود را با استفاده از دکمه زیر به اشتراک بگذارید:"
	MsgPhoneNotOwn     = "لطفا فقط شماره تماس خودتان را به اشتراک بگذارید."
	MsgSchoolPrompt    = "لطفا مدرسه خود را از لیست زیر انتخاب کنید:"
	MsgSchoolNotListed = "مدرسه انتخاب شده در لیست شهر شما نیست. لطفا از دکمه‌ها استفاده کنید."
	MsgProfileNotFound = "اطلاعات کاربری شما یافت نشد. لطفا با /start مجددا شروع کنید."
	MsgRegisterFirst   = "ابتدا باید استان و شهر خود را در ثبت‌نام اولیه مشخص کنید!"

	MsgAdminWelcome          = "👑 **پنل ادمین** 👑\n\nاز گزینه‌های زیر برای مدیریت ربات استفاده کنید:"
	MsgAdminNoChats          = "ربات در هیچ کانالی ادمین نیست. ابتدا ربات را در کانال مورد نظر ادمین کنید."
	MsgAdminButtonTextPrompt = "لطفا متنی که می‌خواهید روی دکمه شیشه‌ای این کانال نمایش داده شود را وارد کنید:"
	MsgAdminButtonInvalid    = "متن دکمه باید بین ۱ تا ۳۰ کاراکتر باشد. لطفا دوباره تلاش کنید:"
	MsgAdminChannelCanceled  = "عملیات افزودن کانال لغو شد."

	MsgAdminSchoolProvince     = "مرحله ۱: انتخاب استان \n\nلطفا استانی که می‌خواهید برای آن مدرسه اضافه کنید را انتخاب نمایید:"
	MsgAdminSchoolNameInvalid  = "نام مدرسه باید بین ۳ تا ۱۰۰ کاراکتر باشد. لطفا دوباره تلاش کنید."
	MsgAdminSchoolInstructions = "لطفا نام هر مدرسه را در یک پیام جداگانه ارسال کنید. پس از اتمام، روی دکمه 'اتمام و ذخیره' کلیک کنید."
	MsgAdminSchoolNoNew        = "هیچ مدرسه‌ی جدیدی برای افزودن وارد نشده است. عملیات بدون تغییر پایان یافت."
	MsgAdminSchoolCanceled     = "عملیات مدیریت مدارس لغو شد."

	FieldUnset = "ثبت نشده"
)

func MsgWelcomeNewUser(coins int64) string {
	return fmt.Sprintf("سلام! به ربات اجتماعی دانش‌آموزی خوش آمدید. %d سکه اولیه به شما تعلق گرفت.", coins)
}

func MsgNameSaved(name string) string {
	return fmt.Sprintf("نام شما \"%s\" با موفقیت ثبت شد.", name)
}

func MsgAgeInvalid(min, max int) string {
	return fmt.Sprintf("سن وارد شده معتبر نیست. لطفا سن خود را به صورت یک عدد بین %d تا %d وارد کنید.", min, max)
}

func MsgAgeSaved(age int) string {
	return fmt.Sprintf("سن شما \"%d\" با موفقیت ثبت شد.", age)
}

func MsgPhoneSaved(phone string) string {
	return fmt.Sprintf("شماره تماس شما (%s) با موفقیت ثبت شد.", phone)
}

func MsgSchoolSaved(school string) string {
	return fmt.Sprintf("مدرسه شما \"%s\" با موفقیت ثبت شد.", school)
}

func MsgNoSchoolsForCity(city, province string) string {
	return fmt.Sprintf("متاسفانه در حال حاضر مدرسه‌ای برای شهر %s در استان %s ثبت نشده است. این مورد به ادمین اطلاع داده خواهد شد.", city, province)
}

func MsgCompletionBonus(coins int64) string {
	return fmt.Sprintf("🎉 پروفایل شما تکمیل شد! %d سکه جایزه به شما تعلق گرفت.", coins)
}

func MsgCoinsBalance(coins, referralCoins int64, link string) string {
	return fmt.Sprintf(
		"💰 موجودی سکه‌های شما: **%d** سکه\n\nبا دعوت هر دوست از طریق لینک زیر، **%d سکه** دریافت کنید:\n\n`%s`",
		coins, referralCoins, link)
}

func MsgReferrerNotified(firstName string, coins int64) string {
	if firstName == "" {
		firstName = "جدید"
	}
	return fmt.Sprintf("کاربر %s با لینک دعوت شما وارد ربات شد و %d سکه به شما اضافه گردید.", firstName, coins)
}

func MsgChannelLost(title string) string {
	return fmt.Sprintf("⚠️ ربات از کانال \"%s\" حذف شد. این کانال در لیست عضویت اجباری است و بررسی عضویت کاربران در آن ممکن نیست. لطفا ربات را دوباره ادمین کنید.", title)
}

func MsgAdminChannelAdded(title string) string {
	return fmt.Sprintf("کانال \"%s\" با موفقیت به لیست کانال‌های عضویت اجباری اضافه شد.", title)
}

func MsgAdminChannelConfirm(title, link, buttonText string) string {
	return fmt.Sprintf("کانال: %s\nلینک: %s\nمتن دکمه: %s\n\nآیا این اطلاعات صحیح است و کانال به لیست عضویت اجباری اضافه شود؟", title, link, buttonText)
}

// MsgAdminSelectChat renders the mandatory-channel management screen:
// the channels already on the mandatory list followed by the pick prompt.
func MsgAdminSelectChat(current []model.Channel) string {
	var b strings.Builder
	b.WriteString("**مدیریت کانال‌های عضویت اجباری**\n\n")
	if len(current) == 0 {
		b.WriteString("هنوز کانالی در لیست عضویت اجباری ثبت نشده است.\n\n")
	} else {
		b.WriteString("لیست کانال‌های فعلی:\n")
		for _, ch := range current {
			fmt.Fprintf(&b, "- %s\n", ch.Title)
		}
		b.WriteString("\n")
	}
	b.WriteString("کانالی که می‌خواهید به لیست عضویت اجباری اضافه شود را انتخاب کنید:")
	return b.String()
}

// MsgAdminSchoolBatchIntro opens the school batch-entry step with the
// schools already saved for the chosen city.
func MsgAdminSchoolBatchIntro(existing []string) string {
	var b strings.Builder
	if len(existing) == 0 {
		b.WriteString("در حال حاضر مدرسه‌ای برای این شهر ثبت نشده است.\n\n")
	} else {
		b.WriteString("مدارس موجود:\n- ")
		b.WriteString(strings.Join(existing, "\n- "))
		b.WriteString("\n\n")
	}
	b.WriteString(MsgAdminSchoolInstructions)
	return b.String()
}

func MsgAdminSchoolCity(province string) string {
	return fmt.Sprintf("استان انتخاب شده: %s\n\n مدیریت مدارس | مرحله ۲: انتخاب شهر \n\nلطفا شهر مورد نظر را انتخاب کنید:", province)
}

func MsgAdminSchoolQueued(name string, queued []string) string {
	return fmt.Sprintf("مدرسه \"%s\" به لیست افزوده شد. \nمدارس جدید در صف: %d\n\nبرای افزودن مدرسه بعدی، نام آن را ارسال کنید یا برای پایان، دکمه \"اتمام و ذخیره\" را بزنید.", name, len(queued))
}

func MsgAdminSchoolDuplicate(name string) string {
	return fmt.Sprintf("مدرسه \"%s\" قبلا در لیست موقت شما برای افزودن در این نوبت، اضافه شده است.", name)
}

func MsgAdminSchoolsSaved(count int64, city, province string) string {
	return fmt.Sprintf("تعداد %d مدرسه جدید با موفقیت برای شهر %s در استان %s ذخیره/به‌روزرسانی شد.", count, city, province)
}
