package security

import "file-sharing-server/internal/model"

// Проверки доступа не обращаются к хранилищу: isGrantee сообщает,
// есть ли у actor строка в таблице прав на этот файл.

func IsOwner(actor string, file *model.File) bool {
	return file != nil && actor != "" && file.OwnerUUID == actor
}

// CanRead : владелец или соавтор
func CanRead(actor string, file *model.File, isGrantee bool) bool {
	if actor == "" || file == nil {
		return false
	}
	return IsOwner(actor, file) || isGrantee
}

// CanMutate : только владелец; соавтор не может переименовать или удалить файл
func CanMutate(actor string, file *model.File) bool {
	return IsOwner(actor, file)
}

func CanManageGrants(actor string, file *model.File) bool {
	return CanMutate(actor, file)
}
